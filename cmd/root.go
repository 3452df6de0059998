package cmd

import (
	"net/http"
	"os"

	"github.com/snowgate/snowgate/client"
	"github.com/snowgate/snowgate/pkg/version"
	"github.com/spf13/cobra"
)

// subCommandGroup is used to group subcommands in the help output.
type subCommandGroup string

const (
	subCommandGroupBasic    subCommandGroup = "basic"
	subCommandGroupAdvanced subCommandGroup = "advanced"
)

const serverURLDefault = "http://127.0.0.1:8000"

const asciiArt = `
  ___ _ __   _____      ____ _  __ _| |_ ___
 / __| '_ \ / _ \ \ /\ / / _` + "`" + ` |/ _` + "`" + ` | __/ _ \
 \__ \ | | | (_) \ V  V / (_| | (_| | ||  __/
 |___/_| |_|\___/ \_/\_/ \__, |\__,_|\__\___|
                         |___/
`

var serverURL string

// apiClient is the HTTP client used by all subcommands that talk to a
// running snowgate server. It is initialized before any subcommand runs.
var apiClient *client.Client

var rootCmd = &cobra.Command{
	Use:     "snowgate",
	Short:   "snowgate is a policy-filtered SQL tool gateway",
	Version: version.GetVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		apiClient = client.NewClient(serverURL, http.DefaultClient)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&serverURL,
		"server",
		serverURLDefault,
		"base URL of the snowgate server",
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
