// Package files gathers context files for the model: glob expansion,
// size caps, and language detection for fenced code blocks.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TooLargeError reports a file over the configured size cap.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is %d bytes, exceeds limit of %d bytes", e.Path, e.Size, e.Limit)
}

// ReadChecked reads a file, refusing anything over maxSizeMB.
func ReadChecked(path string, maxSizeMB float64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	limit := int64(maxSizeMB * 1024 * 1024)
	if limit > 0 && info.Size() > limit {
		return nil, &TooLargeError{Path: path, Size: info.Size(), Limit: limit}
	}
	return os.ReadFile(path)
}

// ExpandGlobs resolves a mix of literal paths and ** glob patterns
// into a deduplicated, sorted file list, capped at maxFiles (0 means
// no cap). Literal paths are kept even if missing, so the staging
// layer can report them; patterns that match nothing expand to
// nothing.
func ExpandGlobs(patterns []string, maxFiles int) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}
		base, pat := doublestar.SplitPattern(pattern)
		matches, err := doublestar.Glob(os.DirFS(base), pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			full := filepath.Join(base, m)
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				add(full)
			}
		}
	}
	if maxFiles > 0 && len(out) > maxFiles {
		return nil, fmt.Errorf("%d files matched, limit is %d", len(out), maxFiles)
	}
	return out, nil
}

// DetectLanguage guesses the language tag for a fenced code block from
// the file extension. Unknown extensions come back empty.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".rb":
		return "ruby"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cc", ".cpp", ".hpp":
		return "cpp"
	case ".cs":
		return "csharp"
	case ".sh", ".bash":
		return "bash"
	case ".sql":
		return "sql"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	case ".html":
		return "html"
	case ".css":
		return "css"
	default:
		return ""
	}
}
