package gemini

import "fmt"

// ErrorKind classifies verification failures, the only failures that
// surface as hard errors rather than envelopes.
type ErrorKind int

const (
	// ErrKindCLINotFound means the gemini binary is not on PATH.
	// Fatal: no fallback model can fix a missing binary.
	ErrKindCLINotFound ErrorKind = iota
	// ErrKindAuthFailed means the binary is present but the trial
	// call did not succeed, usually missing or expired credentials.
	ErrKindAuthFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindCLINotFound:
		return "cli-not-found"
	case ErrKindAuthFailed:
		return "authentication-failed"
	default:
		return "unknown"
	}
}

// Error is a verification failure with a machine-checkable kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }
