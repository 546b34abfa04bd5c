package gemini

// Response is the uniform envelope returned by every invocation
// attempt and by the fallback loop itself. Failure lives in the
// envelope, not in a returned error: Success false plus Error carries
// the diagnostic, and Metadata records which command and model
// produced it.
type Response struct {
	Content     string         `json:"content"`
	Success     bool           `json:"success"`
	Error       string         `json:"error,omitempty"`
	InputPrompt string         `json:"input_prompt"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ErrorMessage returns the envelope's error text, or a generic message
// when a failing envelope carries none.
func (r Response) ErrorMessage() string {
	if r.Success {
		return ""
	}
	if r.Error != "" {
		return r.Error
	}
	return "unknown error"
}
