package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// runner abstracts the process layer so invocation logic can be tested
// without spawning real binaries.
type runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, exitCode int, err error)
}

// execRunner is the real thing, backed by os/exec.
type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, nil, 0, err
	}
	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

// buildArgs maps options to the CLI's argument vector. The prompt is
// passed as one argument: no shell is involved, so no quoting.
func buildArgs(opts Options, prompt string) []string {
	args := []string{"-m", opts.Model}
	if opts.Sandbox {
		args = append(args, "-s")
	}
	if opts.Debug {
		args = append(args, "-d")
	}
	if opts.AllFiles {
		args = append(args, "-a")
	}
	if opts.ShowMemoryUsage {
		args = append(args, "--show_memory_usage")
	}
	if opts.AutoAccept {
		args = append(args, "-y")
	}
	if opts.Checkpointing {
		args = append(args, "-c")
	}
	return append(args, "-p", prompt)
}

// invoke runs exactly one subprocess attempt for one model and maps
// the outcome to an envelope. Nothing on this path escapes as an
// error: spawn failures, I/O failures and nonzero exits all come back
// as Success=false envelopes so the fallback loop can act on them.
func (c *Client) invoke(ctx context.Context, prompt string, opts Options, inputFiles []string) Response {
	args := buildArgs(opts, prompt)
	resp := Response{
		InputPrompt: prompt,
		Metadata: map[string]any{
			"command":        strings.Join(append([]string{c.bin}, args...), " "),
			"model":          opts.Model,
			"files_included": len(inputFiles),
		},
	}

	var stdin io.Reader
	if len(inputFiles) > 0 {
		staged, err := stageFiles(inputFiles)
		if err != nil {
			resp.Error = fmt.Sprintf("Subprocess error: %v", err)
			return resp
		}
		defer os.Remove(staged)
		f, err := os.Open(staged)
		if err != nil {
			resp.Error = fmt.Sprintf("Subprocess error: %v", err)
			return resp
		}
		defer f.Close()
		stdin = f
	}

	stdout, stderr, code, err := c.runner.Run(ctx, c.bin, args, stdin)
	if err != nil {
		resp.Error = fmt.Sprintf("Subprocess error: %v", err)
		return resp
	}
	resp.Metadata["exit_code"] = code
	if code == 0 {
		resp.Success = true
		resp.Content = strings.TrimSpace(string(stdout))
		return resp
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		resp.Error = msg
	} else {
		resp.Error = fmt.Sprintf("Command failed with exit code %d", code)
	}
	return resp
}
