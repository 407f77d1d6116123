package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level newsdesk command.
var RootCmd = &cobra.Command{
	Use:           "newsdesk",
	Short:         "Newsdesk API client",
	Long:          "Command line interface for registering, logging in and managing articles on a newsdesk API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
