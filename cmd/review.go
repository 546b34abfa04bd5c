package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gembridge/internal/files"
	"gembridge/internal/review"
)

var (
	reviewFocus    string
	reviewLanguage string
)

func init() {
	reviewCmd.Flags().StringVar(&reviewFocus, "focus", "general", "Focus area: general, security, performance, style, or bugs")
	reviewCmd.Flags().StringVar(&reviewLanguage, "language", "", "Programming language (detected from the extension if omitted)")
	rootCmd.AddCommand(reviewCmd)
}

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Review a source file with Gemini",
	Long: `Review a source file for quality, bugs, security, and style.

Examples:
  gembridge review main.go
  gembridge review handler.py --focus security
  gembridge review query.sql --focus performance --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	path := args[0]
	code, err := files.ReadChecked(path, rt.cfg.Context.MaxFileSizeMB)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	language := reviewLanguage
	if language == "" {
		language = files.DetectLanguage(path)
	}
	if language == "" {
		language = "auto-detect"
	}

	ctx, cancel := notifyContext()
	defer cancel()

	resp, err := rt.callTemplate(ctx, "code_review", map[string]string{
		"language":          language,
		"code":              string(code),
		"focus_instruction": review.FocusInstruction(reviewFocus),
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return rt.printResponse(resp)
	}

	result := review.Parse(resp.Content)
	if flagJSON {
		return printJSON(result)
	}
	fmt.Fprintln(os.Stderr, rt.styles.Header.Render("Review: "+path))
	printMarkdown(review.Render(result))
	return nil
}
