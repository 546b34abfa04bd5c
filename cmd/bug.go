package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"gembridge/internal/files"
)

var (
	bugCodeFile  string
	bugLogsFile  string
	bugEnv       string
	bugReproduce string
	bugLanguage  string
)

func init() {
	bugCmd.Flags().StringVar(&bugCodeFile, "code", "", "File with the relevant code")
	bugCmd.Flags().StringVar(&bugLogsFile, "logs", "", "File with error logs")
	bugCmd.Flags().StringVar(&bugEnv, "env", "", "Environment details")
	bugCmd.Flags().StringVar(&bugReproduce, "repro", "", "Steps to reproduce")
	bugCmd.Flags().StringVar(&bugLanguage, "language", "", "Programming language")
	rootCmd.AddCommand(bugCmd)
}

var bugCmd = &cobra.Command{
	Use:   "bug [description]",
	Short: "Analyze a bug with Gemini",
	Long: `Analyze a bug report: root cause, fix suggestions, and prevention.
Run without arguments for an interactive form.

Examples:
  gembridge bug "panic on empty input" --code parser.go --logs crash.log
  gembridge bug`,
	Args: cobra.ArbitraryArgs,
	RunE: runBug,
}

func runBug(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	description := strings.Join(args, " ")
	if description == "" {
		if err := bugForm(&description); err != nil {
			return err
		}
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("bug description is required")
	}

	codeContext := "No code provided"
	language := bugLanguage
	if bugCodeFile != "" {
		code, err := files.ReadChecked(bugCodeFile, rt.cfg.Context.MaxFileSizeMB)
		if err != nil {
			return fmt.Errorf("reading %s: %w", bugCodeFile, err)
		}
		codeContext = string(code)
		if language == "" {
			language = files.DetectLanguage(bugCodeFile)
		}
	}
	if language == "" {
		language = "auto-detect"
	}

	errorLogs := "No logs provided"
	if bugLogsFile != "" {
		logs, err := files.ReadChecked(bugLogsFile, rt.cfg.Context.MaxFileSizeMB)
		if err != nil {
			return fmt.Errorf("reading %s: %w", bugLogsFile, err)
		}
		errorLogs = string(logs)
	}

	ctx, cancel := notifyContext()
	defer cancel()

	resp, err := rt.callTemplate(ctx, "bug_analysis", map[string]string{
		"bug_description":    description,
		"code_context":       codeContext,
		"error_logs":         errorLogs,
		"language":           language,
		"environment":        orNotSpecified(bugEnv),
		"reproduction_steps": orNotSpecified(bugReproduce),
	})
	if err != nil {
		return err
	}
	return rt.printResponse(resp)
}

func bugForm(description *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Describe the bug").
				Placeholder("What happens, and what did you expect?").
				Value(description),
			huh.NewInput().
				Title("Environment (optional)").
				Value(&bugEnv),
			huh.NewText().
				Title("Steps to reproduce (optional)").
				Value(&bugReproduce),
		),
	)
	return form.Run()
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
