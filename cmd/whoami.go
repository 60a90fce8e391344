// ABOUTME: Whoami command for the blog CLI
// ABOUTME: Verifies the persisted token against the backend

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	Long: `Show the currently logged-in user.

Verifies the saved token against the backend; a stale token is
discarded.

Exit codes:
  0 - Logged in
  1 - Not logged in`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami verifies the persisted session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	_, store := newSession()
	store.Initialize(ctx)

	user := store.CurrentUser()
	if user == nil {
		fmt.Fprintln(w, "Not logged in")
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.Username, user.Email)
	}
	return 0
}
