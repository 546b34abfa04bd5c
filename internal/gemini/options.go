package gemini

// DefaultModel is the primary model tried when the caller does not
// pick one.
const DefaultModel = "gemini-3-pro-preview"

// DefaultFallbackModel is tried when the primary model fails.
const DefaultFallbackModel = "gemini-2.5-pro"

// Options shapes a single CLI invocation. It is a plain value: the
// orchestrator copies it per attempt and rewrites Model, so callers
// never see their options mutated.
type Options struct {
	Model           string
	FallbackModels  []string
	Sandbox         bool
	Debug           bool
	AllFiles        bool
	ShowMemoryUsage bool
	AutoAccept      bool
	Checkpointing   bool
}

// DefaultOptions returns the baseline options: the current preview
// model with one stable fallback and every flag off.
func DefaultOptions() Options {
	return Options{
		Model:          DefaultModel,
		FallbackModels: []string{DefaultFallbackModel},
	}
}

// Candidates returns the models to try, in order: the primary model
// followed by the fallbacks verbatim. Duplicates are kept; a caller
// that lists the primary again gets it tried again. An empty primary
// model contributes nothing, so options with no model and no fallbacks
// yield an empty list.
func (o Options) Candidates() []string {
	var out []string
	if o.Model != "" {
		out = append(out, o.Model)
	}
	return append(out, o.FallbackModels...)
}
