package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/graphmail/graphmail/internal/graph"
	"github.com/graphmail/graphmail/internal/msauth"
)

func newAuthCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in to Microsoft and write the token file",
		Long: `Run the interactive delegated sign-in flow against the Microsoft identity
platform. A local callback server listens on ` + msauth.CallbackAddr + `; open the
printed URL in a browser, sign in, and consent to the requested permissions.

The resulting token record is written to the token file that 'graphmail serve'
reads. Re-run this command whenever the token expires.

Required environment variables:
  GRAPH_CLIENT_ID      Azure AD application (client) ID
  GRAPH_CLIENT_SECRET  Azure AD client secret
  GRAPH_TENANT_ID      Azure AD tenant ID (or "common")`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Sign in again even when a valid token is already cached")

	return cmd
}

func runAuth(cmd *cobra.Command, force bool) error {
	flow, err := msauth.New(graph.ConfigFromEnv())
	if err != nil {
		return err
	}

	if !force {
		if _, ok := flow.CachedToken(); ok {
			fmt.Printf("A valid token is already cached at %s\n", flow.TokenPath())
			fmt.Println("Use --force to sign in again.")
			return nil
		}
	}

	fmt.Printf("Open this URL in your browser to sign in:\n\n  http://%s/\n\n", msauth.CallbackAddr)
	fmt.Println("Waiting for the sign-in to complete (Ctrl-C to abort)...")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	record, err := flow.Run(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	log.Printf("Token valid for %d seconds", record.ExpiresIn)
	fmt.Printf("Authentication successful. Token written to %s\n", flow.TokenPath())
	fmt.Println("You can now start the server with 'graphmail serve'.")
	return nil
}
