package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed by the snowgate server",
	RunE:  runListTools,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "2",
	},
}

func init() {
	rootCmd.AddCommand(listToolsCmd)
}

func runListTools(cmd *cobra.Command, args []string) error {
	tools, err := apiClient.ListTools()
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}
	if len(tools) == 0 {
		cmd.Println("The server does not expose any tools.")
		return nil
	}
	for _, t := range tools {
		cmd.Printf("%s: %s\n", t.Name, t.Description)
	}
	cmd.Println()
	cmd.Println("Run 'snowgate usage <name>' to see a tool's input parameters.")
	return nil
}
