package entity

// Status is the phase of the interaction state machine
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// InteractionState is an immutable snapshot of everything a session shows.
// Pointer fields are never mutated once a snapshot is published; transitions
// build a new value instead.
type InteractionState struct {
	Status       Status                `json:"status"`
	InputText    string                `json:"input_text"`
	SelectedFile *UploadFile           `json:"selected_file,omitempty"`
	LastResult   *ClassificationResult `json:"last_result,omitempty"`
	IsLoading    bool                  `json:"is_loading"`
	ErrorMessage *string               `json:"error_message,omitempty"`
	WasSaved     bool                  `json:"was_saved"`
}

// NewInteractionState returns the empty state a session starts with
func NewInteractionState() InteractionState {
	return InteractionState{Status: StatusIdle}
}

// Error returns the error message or an empty string
func (s InteractionState) Error() string {
	if s.ErrorMessage == nil {
		return ""
	}
	return *s.ErrorMessage
}

// HasError returns true if an error message is displayed
func (s InteractionState) HasError() bool {
	return s.ErrorMessage != nil
}

// CanSubmit returns true if no request is in flight
func (s InteractionState) CanSubmit() bool {
	return !s.IsLoading
}
