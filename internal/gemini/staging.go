package gemini

import (
	"fmt"
	"os"
)

// stageFiles writes the concatenated contents of paths to a temporary
// file and returns its path. Each file is framed with a header line;
// an unreadable file is replaced in place by an error marker so one
// bad path never aborts the batch. The caller removes the file when
// the subprocess is done.
func stageFiles(paths []string) (string, error) {
	f, err := os.CreateTemp("", "gembridge-context-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating context file: %w", err)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(f, "--- %s (Error: %s) ---\n\n", p, err.Error())
			continue
		}
		fmt.Fprintf(f, "--- %s ---\n", p)
		f.Write(data)
		f.WriteString("\n\n")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing context file: %w", err)
	}
	return f.Name(), nil
}
