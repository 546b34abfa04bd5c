package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gembridge/internal/files"
)

var (
	featureContext string
	featureFocus   string
)

func init() {
	featureCmd.Flags().StringVar(&featureContext, "context", "", "Project context and constraints")
	featureCmd.Flags().StringVar(&featureFocus, "focus", "", "Specific areas to focus on")
	rootCmd.AddCommand(featureCmd)
}

var featureCmd = &cobra.Command{
	Use:   "feature [plan-file]",
	Short: "Proofread a feature plan with Gemini",
	Long: `Review a feature plan or specification for completeness, feasibility,
and missing considerations. Reads from stdin when no file is given.

Examples:
  gembridge feature plan.md
  gembridge feature plan.md --focus "security, rollout"
  cat plan.md | gembridge feature`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeature,
}

func runFeature(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	var plan []byte
	if len(args) == 1 {
		plan, err = files.ReadChecked(args[0], rt.cfg.Context.MaxFileSizeMB)
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
	} else {
		plan, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
	if len(plan) == 0 {
		return fmt.Errorf("empty feature plan")
	}

	contextText := featureContext
	if contextText == "" {
		contextText = "No additional context provided"
	}
	focus := featureFocus
	if focus == "" {
		focus = "General review"
	}

	ctx, cancel := notifyContext()
	defer cancel()

	resp, err := rt.callTemplate(ctx, "feature_plan_review", map[string]string{
		"feature_plan": string(plan),
		"context":      contextText,
		"focus_areas":  focus,
	})
	if err != nil {
		return err
	}
	return rt.printResponse(resp)
}
