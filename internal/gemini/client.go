package gemini

import (
	"context"
	"sync"
)

// BinaryName is the gemini CLI executable looked up on PATH.
const BinaryName = "gemini"

const verifyPrompt = "Hello, this is a test. Please respond briefly."

// Client talks to the gemini CLI. One verification result is cached
// per client; a fresh client verifies again. Safe for concurrent use.
type Client struct {
	bin      string
	runner   runner
	defaults Options

	mu       sync.Mutex
	verified bool
}

// NewClient returns a client using opts as the defaults for calls that
// pass none.
func NewClient(opts Options) *Client {
	return &Client{bin: BinaryName, runner: execRunner{}, defaults: opts}
}

// VerifyAuthentication checks that the gemini binary is on PATH and
// that one trial call against the primary model succeeds. The result
// is cached for the life of the client; later calls return nil without
// spawning anything.
func (c *Client) VerifyAuthentication(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verified {
		return nil
	}
	if _, err := c.runner.LookPath(c.bin); err != nil {
		return &Error{
			Kind:    ErrKindCLINotFound,
			Message: c.bin + " CLI not found in PATH",
			Err:     err,
		}
	}
	trial := c.defaults
	trial.FallbackModels = nil
	resp := c.invoke(ctx, verifyPrompt, trial, nil)
	if !resp.Success {
		return &Error{
			Kind:    ErrKindAuthFailed,
			Message: resp.ErrorMessage(),
		}
	}
	c.verified = true
	return nil
}

// Call sends prompt to the first candidate model that answers.
// Candidates are tried strictly in order; the first success wins and
// later candidates are never attempted. If every candidate fails the
// last failing envelope is returned. The returned error is non-nil
// only when verification fails; every per-attempt failure is absorbed
// into the envelope.
func (c *Client) Call(ctx context.Context, prompt string, opts *Options, inputFiles []string) (Response, error) {
	if err := c.VerifyAuthentication(ctx); err != nil {
		return Response{}, err
	}

	current := c.defaults
	if opts != nil {
		current = *opts
	}
	candidates := current.Candidates()
	if len(candidates) == 0 {
		return Response{
			Success:     false,
			Error:       "No models defined to try",
			InputPrompt: prompt,
		}, nil
	}

	var last Response
	for _, model := range candidates {
		attempt := current
		attempt.Model = model
		last = c.invoke(ctx, prompt, attempt, inputFiles)
		if last.Success {
			return last, nil
		}
	}
	return last, nil
}

// CallStructured composes a labeled system/context/user prompt and
// routes it through Call, so structured and plain invocations share
// one fallback path.
func (c *Client) CallStructured(ctx context.Context, systemPrompt, userPrompt, contextText string, opts *Options) (Response, error) {
	return c.Call(ctx, Compose(systemPrompt, userPrompt, contextText), opts, nil)
}
