package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gembridge/internal/cache"
	"gembridge/internal/config"
	"gembridge/internal/gemini"
	"gembridge/internal/templates"
	"gembridge/internal/ui"
)

const Version = "0.1.0"

var (
	configPath  string
	flagModel   string
	flagSandbox bool
	flagDebug   bool
	flagJSON    bool
	flagNoColor bool
	showPrompts bool
	verbose     bool
)

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Override the primary model")
	rootCmd.PersistentFlags().BoolVarP(&flagSandbox, "sandbox", "s", false, "Run the gemini CLI in sandbox mode")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable gemini CLI debug output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit raw JSON instead of rendered output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&showPrompts, "show-prompts", false, "Print the composed prompt before calling")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
}

var rootCmd = &cobra.Command{
	Use:   "gembridge",
	Short: "Bridge the gemini CLI into reviews, plans, and explanations",
	Long: `gembridge wraps the gemini command-line binary with prompt templates,
model fallback, and an MCP server.

Examples:
  gembridge review main.go --focus security
  gembridge explain 'internal/**/*.go' --detail advanced
  gembridge bug "panic on empty input" --logs crash.log
  gembridge feature plan.md
  gembridge status                      # check CLI and auth
  gembridge serve                       # MCP server over stdio`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// notifyContext cancels on SIGINT or SIGTERM so an in-flight gemini
// subprocess is killed rather than orphaned.
func notifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runtime bundles everything a command needs, loaded once per run.
type runtime struct {
	cfg     *config.Config
	client  *gemini.Client
	catalog *templates.Catalog
	opts    gemini.Options
	theme   *ui.Theme
	styles  *ui.Styles
	cache   *cache.Store // nil when disabled
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(flagModel, flagSandbox, flagDebug)

	catalog := templates.NewCatalog()
	if cfg.TemplatesDir != "" {
		if err := catalog.LoadDir(cfg.TemplatesDir); err != nil {
			return nil, fmt.Errorf("loading custom templates: %w", err)
		}
	}

	opts := gemini.Options{
		Model:           cfg.Gemini.Model,
		FallbackModels:  cfg.Gemini.FallbackModels,
		Sandbox:         cfg.Gemini.Sandbox,
		Debug:           cfg.Gemini.Debug,
		AllFiles:        cfg.Gemini.AllFiles,
		ShowMemoryUsage: cfg.Gemini.ShowMemoryUsage,
		AutoAccept:      cfg.Gemini.AutoAccept,
		Checkpointing:   cfg.Gemini.Checkpointing,
	}

	theme := ui.ThemeFromConfig(ui.ThemeConfig{
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Success:   cfg.Theme.Success,
		Error:     cfg.Theme.Error,
		Warning:   cfg.Theme.Warning,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
		Spinner:   cfg.Theme.Spinner,
	})

	rt := &runtime{
		cfg:     cfg,
		client:  gemini.NewClient(opts),
		catalog: catalog,
		opts:    opts,
		theme:   theme,
		styles:  ui.NewStyles(theme),
	}

	if cfg.Cache.Enabled {
		store, err := cache.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			// A broken cache should not block the call path.
			if verbose {
				fmt.Fprintf(os.Stderr, "warning: response cache disabled: %v\n", err)
			}
		} else {
			rt.cache = store
		}
	}
	return rt, nil
}

func (rt *runtime) close() {
	if rt.cache != nil {
		rt.cache.Close()
	}
}

// callTemplate formats the named template, consults the cache, and
// runs the fallback chain with a spinner on interactive terminals.
func (rt *runtime) callTemplate(ctx context.Context, name string, values map[string]string) (gemini.Response, error) {
	tpl := rt.catalog.Get(name)
	if tpl == nil {
		return gemini.Response{}, fmt.Errorf("template %q not found", name)
	}
	systemPrompt, userPrompt, err := tpl.Format(values)
	if err != nil {
		return gemini.Response{}, err
	}

	prompt := gemini.Compose(systemPrompt, userPrompt, "")
	if showPrompts {
		fmt.Fprintf(os.Stderr, "--- prompt ---\n%s\n--- end prompt ---\n", prompt)
	}
	if rt.cache != nil {
		if content, ok := rt.cache.Get(rt.opts.Model, prompt); ok {
			if verbose {
				fmt.Fprintln(os.Stderr, "cache hit")
			}
			return gemini.Response{Content: content, Success: true, InputPrompt: prompt}, nil
		}
	}

	var resp gemini.Response
	opts := rt.opts
	err = ui.RunWithSpinner(rt.theme, "Asking "+rt.opts.Model+"...", func() error {
		var callErr error
		resp, callErr = rt.client.CallStructured(ctx, systemPrompt, userPrompt, "", &opts)
		return callErr
	})
	if err != nil {
		return gemini.Response{}, err
	}
	if resp.Success && rt.cache != nil {
		_ = rt.cache.Put(rt.opts.Model, prompt, resp.Content)
	}
	return resp, nil
}

// printResponse renders a successful response, or reports the failure
// with the model that produced it, and returns an error for a failing
// envelope so the command exits nonzero.
func (rt *runtime) printResponse(resp gemini.Response) error {
	if flagJSON {
		return printJSON(resp)
	}
	if !resp.Success {
		model, _ := resp.Metadata["model"].(string)
		if model != "" {
			return fmt.Errorf("%s (model %s)", resp.ErrorMessage(), model)
		}
		return fmt.Errorf("%s", resp.ErrorMessage())
	}
	printMarkdown(resp.Content)
	return nil
}

func printMarkdown(content string) {
	if flagNoColor || !ui.IsTerminal() {
		fmt.Println(content)
		return
	}
	fmt.Println(ui.RenderMarkdown(content, ui.TerminalWidth()))
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
