package usecase

import "github.com/newsdesk/news-classifier-web/internal/domain/entity"

// ActionType identifies a state transition
type ActionType string

const (
	ActionSetInputText     ActionType = "set_input_text"
	ActionSelectFile       ActionType = "select_file"
	ActionValidationFailed ActionType = "validation_failed"
	ActionSubmitStarted    ActionType = "submit_started"
	ActionSubmitSucceeded  ActionType = "submit_succeeded"
	ActionSubmitFailed     ActionType = "submit_failed"
	ActionSubmitSettled    ActionType = "submit_settled"
	ActionReset            ActionType = "reset"
)

// Action is a state transition request. Only the fields relevant to Type are read.
type Action struct {
	Type    ActionType
	Text    string
	File    *entity.UploadFile
	Result  *entity.ClassificationResult
	Message string
	Kind    entity.RequestKind
	Save    bool
}

// Reduce returns the state that follows s after a. It never mutates s.
func Reduce(s entity.InteractionState, a Action) entity.InteractionState {
	switch a.Type {
	case ActionSetInputText:
		s.InputText = a.Text

	case ActionSelectFile:
		s.SelectedFile = a.File

	case ActionValidationFailed:
		s.ErrorMessage = stringPtr(a.Message)

	case ActionSubmitStarted:
		s.Status = entity.StatusLoading
		s.IsLoading = true
		s.ErrorMessage = nil
		s.WasSaved = false

	case ActionSubmitSucceeded:
		s.Status = entity.StatusSuccess
		s.LastResult = a.Result
		s.ErrorMessage = nil
		if a.Kind == entity.RequestKindFile {
			// uploads are one-shot
			s.SelectedFile = nil
		} else {
			s.WasSaved = a.Save
		}

	case ActionSubmitFailed:
		s.Status = entity.StatusFailed
		s.ErrorMessage = stringPtr(a.Message)

	case ActionSubmitSettled:
		s.IsLoading = false
		if s.Status == entity.StatusLoading {
			s.Status = entity.StatusIdle
		}

	case ActionReset:
		s.InputText = ""
		s.SelectedFile = nil
		s.LastResult = nil
		s.ErrorMessage = nil
		s.WasSaved = false
		// isLoading is owned by the request in flight
		if !s.IsLoading {
			s.Status = entity.StatusIdle
		}
	}

	return s
}

func stringPtr(s string) *string {
	return &s
}
