package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the graphmail application
var rootCmd = &cobra.Command{
	Use:   "graphmail",
	Short: "MCP server exposing a Microsoft 365 mailbox to AI assistants",
	Long: `graphmail is an MCP (Model Context Protocol) server that gives AI
assistants access to a Microsoft 365 mailbox through the Microsoft Graph API:
listing and reading emails, sending, folders, categories, inbox rules,
attachments and PDF text extraction.

Authentication is delegated: run 'graphmail auth' once to sign in; the server
reads the resulting token file and never performs OAuth itself.`,
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
	rootCmd.SetVersionTemplate(`{{printf "graphmail version %s\n" .Version}}`)

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
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
