package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available prompt templates",
	Long: `List builtin and custom prompt templates. Custom templates come from
templates_dir in the config and override builtins with the same name.`,
	RunE: runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if flagJSON {
		list := make(map[string]string)
		for _, tpl := range rt.catalog.List() {
			list[tpl.Name] = tpl.Description
		}
		return printJSON(list)
	}

	for _, tpl := range rt.catalog.List() {
		fmt.Printf("%s\n", rt.styles.Header.Render(tpl.Name))
		fmt.Printf("  %s\n", tpl.Description)
		if len(tpl.Variables) > 0 {
			names := make([]string, 0, len(tpl.Variables))
			for name := range tpl.Variables {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Printf("  %s\n", rt.styles.Muted.Render("variables: "+strings.Join(names, ", ")))
		}
	}
	return nil
}
