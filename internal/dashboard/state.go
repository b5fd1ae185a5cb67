package dashboard

import "github.com/Sameer280406/Projects/internal/models"

// FailureMessage is what the user sees for any failed upload, whatever the cause.
const FailureMessage = "Failed to process CSV file. Check backend."

// Phase names where the dashboard is in its upload cycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseUploading Phase = "uploading"
	PhaseLoaded    Phase = "loaded"
	PhaseFailed    Phase = "idle-with-error"
)

// State is the dashboard's upload state. It only changes through
// startUpload, applySuccess and applyFailure.
type State struct {
	FileName string          `json:"fileName"`
	Summary  *models.Summary `json:"summary"`
	Loading  bool            `json:"loading"`
	Error    string          `json:"error"`

	// Attempt is the id of the most recent upload attempt.
	Attempt uint64 `json:"attempt"`
}

// Phase derives the state machine position from the fields.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseUploading
	case s.Error != "":
		return PhaseFailed
	case s.Summary != nil:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

// startUpload begins a new attempt. The previous summary stays in place
// until the new outcome arrives.
func (s *State) startUpload(fileName string) uint64 {
	s.Attempt++
	s.FileName = fileName
	s.Error = ""
	s.Loading = true
	return s.Attempt
}

// applySuccess replaces the summary if attempt is still the latest one.
func (s *State) applySuccess(attempt uint64, summary *models.Summary) bool {
	if attempt != s.Attempt {
		return false
	}
	s.Summary = summary
	s.Loading = false
	return true
}

// applyFailure records message if attempt is still the latest one. The
// previous summary is left untouched.
func (s *State) applyFailure(attempt uint64, message string) bool {
	if attempt != s.Attempt {
		return false
	}
	s.Error = message
	s.Loading = false
	return true
}
