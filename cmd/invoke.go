package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var invokeCmdArgsJSON string

var invokeToolCmd = &cobra.Command{
	Use:   "invoke <name>",
	Short: "Invoke a tool on the snowgate server",
	Long: "Invoke a tool on the snowgate server.\n" +
		"Tool arguments are supplied as a JSON object via --args.\n" +
		"eg: snowgate invoke read_query --args '{\"query\": \"SELECT * FROM orders LIMIT 5\"}'",
	Args: cobra.ExactArgs(1),
	RunE: runInvokeTool,
	Annotations: map[string]string{
		"group": string(subCommandGroupBasic),
		"order": "4",
	},
}

func init() {
	invokeToolCmd.Flags().StringVar(
		&invokeCmdArgsJSON,
		"args",
		"{}",
		"JSON object containing the tool's input arguments",
	)
	rootCmd.AddCommand(invokeToolCmd)
}

func runInvokeTool(cmd *cobra.Command, args []string) error {
	var toolArgs map[string]any
	if err := json.Unmarshal([]byte(invokeCmdArgsJSON), &toolArgs); err != nil {
		return fmt.Errorf("failed to parse --args as a JSON object: %w", err)
	}

	result, err := apiClient.InvokeTool(args[0], toolArgs)
	if err != nil {
		return fmt.Errorf("failed to invoke tool '%s': %w", args[0], err)
	}

	if result.Error != "" {
		cmd.Printf("Error: %s\n", result.Error)
		return nil
	}

	switch r := result.Result.(type) {
	case []any:
		for _, item := range r {
			cmd.Println(item)
		}
	default:
		cmd.Println(r)
	}
	return nil
}
