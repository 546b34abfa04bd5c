package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gembridge/internal/files"
	"gembridge/internal/gemini"
	"gembridge/internal/ui"
)

var (
	explainDetail    string
	explainQuestions string
	explainLanguage  string
)

func init() {
	explainCmd.Flags().StringVar(&explainDetail, "detail", "intermediate", "Detail level: basic, intermediate, or advanced")
	explainCmd.Flags().StringVar(&explainQuestions, "questions", "", "Specific questions about the code")
	explainCmd.Flags().StringVar(&explainLanguage, "language", "", "Programming language")
	rootCmd.AddCommand(explainCmd)
}

var explainCmd = &cobra.Command{
	Use:   "explain <file-or-glob>...",
	Short: "Explain code with Gemini",
	Long: `Explain what code does and how it works. Accepts files or ** globs;
multiple files are staged as context for the model.

Examples:
  gembridge explain main.go
  gembridge explain 'internal/**/*.go' --detail advanced
  gembridge explain parser.go --questions "why the two-pass scan?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	paths, err := files.ExpandGlobs(args, rt.cfg.Context.MaxFiles)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched")
	}

	// Single file goes inline through the template; multiple files are
	// staged on stdin with the template seeing the file list.
	primary := paths[0]
	code, err := files.ReadChecked(primary, rt.cfg.Context.MaxFileSizeMB)
	if err != nil {
		return fmt.Errorf("reading %s: %w", primary, err)
	}
	language := explainLanguage
	if language == "" {
		language = files.DetectLanguage(primary)
	}
	if language == "" {
		language = "auto-detect"
	}

	tpl := rt.catalog.Get("code_explanation")
	systemPrompt, userPrompt, err := tpl.Format(map[string]string{
		"code":         string(code),
		"language":     language,
		"detail_level": explainDetail,
		"questions":    orDefaultStr(explainQuestions, "None"),
	})
	if err != nil {
		return err
	}

	ctx, cancel := notifyContext()
	defer cancel()

	prompt := gemini.Compose(systemPrompt, userPrompt, extraFilesNote(paths))
	if showPrompts {
		fmt.Println(prompt)
	}

	var resp gemini.Response
	opts := rt.opts
	err = ui.RunWithSpinner(rt.theme, "Asking "+rt.opts.Model+"...", func() error {
		var callErr error
		resp, callErr = rt.client.Call(ctx, prompt, &opts, paths[1:])
		return callErr
	})
	if err != nil {
		return err
	}
	return rt.printResponse(resp)
}

// extraFilesNote tells the model which supporting files arrive on
// stdin. Empty when only one file is being explained.
func extraFilesNote(paths []string) string {
	if len(paths) < 2 {
		return ""
	}
	return "Supporting files provided on stdin:\n" + strings.Join(paths[1:], "\n")
}

func orDefaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
