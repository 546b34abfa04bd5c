package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gembridge/internal/config"
)

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE:  runConfigInit,
}

func runConfig(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if flagJSON {
		return printJSON(rt.cfg)
	}

	path, _ := config.GetConfigPath()
	fmt.Printf("Config file:     %s\n", path)
	fmt.Printf("Model:           %s\n", rt.cfg.Gemini.Model)
	fmt.Printf("Fallback models: %v\n", rt.cfg.Gemini.FallbackModels)
	fmt.Printf("Sandbox:         %t\n", rt.cfg.Gemini.Sandbox)
	fmt.Printf("Cache:           enabled=%t ttl=%ds\n", rt.cfg.Cache.Enabled, rt.cfg.Cache.TTLSeconds)
	fmt.Printf("Context limits:  %g MB per file, %d files\n", rt.cfg.Context.MaxFileSizeMB, rt.cfg.Context.MaxFiles)
	if rt.cfg.TemplatesDir != "" {
		fmt.Printf("Templates dir:   %s\n", rt.cfg.TemplatesDir)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	path, _ := config.GetConfigPath()
	fmt.Printf("wrote %s\n", path)
	return nil
}
