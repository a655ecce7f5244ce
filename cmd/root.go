package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the jamamcp application
var rootCmd = &cobra.Command{
	Use:   "jamamcp",
	Short: "MCP server for Jama Connect",
	Long: `jamamcp exposes Jama Connect projects, items, relationships and test
management data as Model Context Protocol (MCP) tools for AI assistants.

Credentials are resolved from JAMA_CLIENT_ID/JAMA_CLIENT_SECRET, falling
back to an AWS secrets-manager parameter named by JAMA_AWS_SECRET_PATH.
Set JAMA_MOCK_MODE=true to serve canned data without a Jama instance.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "jamamcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
