package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gembridge/internal/gemini"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the gemini CLI is installed and authenticated",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := notifyContext()
	defer cancel()

	verifyErr := rt.client.VerifyAuthentication(ctx)

	if flagJSON {
		status := map[string]any{
			"model":           rt.opts.Model,
			"fallback_models": rt.opts.FallbackModels,
			"authenticated":   verifyErr == nil,
		}
		if verifyErr != nil {
			status["error"] = verifyErr.Error()
		}
		return printJSON(status)
	}

	fmt.Printf("Model:     %s\n", rt.opts.Model)
	fmt.Printf("Fallbacks: %v\n", rt.opts.FallbackModels)
	if verifyErr == nil {
		fmt.Println(rt.styles.Success.Render("gemini CLI found and authenticated"))
		return nil
	}

	var gerr *gemini.Error
	if errors.As(verifyErr, &gerr) && gerr.Kind == gemini.ErrKindCLINotFound {
		fmt.Println(rt.styles.Error.Render("gemini CLI not found in PATH"))
		fmt.Println(rt.styles.Muted.Render("install it and make sure it is on your PATH"))
	} else {
		fmt.Println(rt.styles.Error.Render("gemini CLI authentication failed"))
		fmt.Println(rt.styles.Muted.Render(verifyErr.Error()))
	}
	return verifyErr
}
