package cmd

import (
	"github.com/spf13/cobra"

	"gembridge/internal/serve"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Expose the gemini tools over the Model Context Protocol so agent hosts
can call them. The server reads requests on stdin and answers on stdout,
so all diagnostics go to stderr.

Example host registration:
  { "command": "gembridge", "args": ["serve"] }`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := notifyContext()
	defer cancel()

	server := serve.New(rt.cfg, rt.client, rt.catalog, rt.cache)
	return server.Run(ctx)
}
