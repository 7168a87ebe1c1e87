package entity

import (
	"errors"
	"strings"
)

// RequestKind distinguishes typed text from an uploaded file
type RequestKind string

const (
	RequestKindText RequestKind = "text"
	RequestKindFile RequestKind = "file"
)

// Errors returned by ClassificationRequest.Validate
var (
	ErrEmptyText = errors.New("text is empty")
	ErrNoFile    = errors.New("no file selected")
)

// FileFieldName is the multipart form field carrying an uploaded file, both
// from the browser and towards the classification service
const FileFieldName = "file"

// UploadFile is a text file picked by the user for classification
type UploadFile struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content []byte `json:"-"`
}

// NewUploadFile creates an UploadFile from its name and raw content
func NewUploadFile(name string, content []byte) *UploadFile {
	return &UploadFile{
		Name:    name,
		Size:    len(content),
		Content: content,
	}
}

// ClassificationRequest is either a text request or a file request
type ClassificationRequest struct {
	Kind RequestKind
	Text string
	File *UploadFile
}

// NewTextRequest creates a text classification request
func NewTextRequest(text string) *ClassificationRequest {
	return &ClassificationRequest{Kind: RequestKindText, Text: text}
}

// NewFileRequest creates a file classification request
func NewFileRequest(file *UploadFile) *ClassificationRequest {
	return &ClassificationRequest{Kind: RequestKindFile, File: file}
}

// Validate checks the local preconditions of the request
func (r *ClassificationRequest) Validate() error {
	switch r.Kind {
	case RequestKindFile:
		if r.File == nil {
			return ErrNoFile
		}
	default:
		if strings.TrimSpace(r.Text) == "" {
			return ErrEmptyText
		}
	}
	return nil
}

// ClassificationResult is the category assigned to a piece of text
type ClassificationResult struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Color returns the presentation color of the result's category
func (r *ClassificationResult) Color() string {
	return CategoryColor(r.Category)
}
