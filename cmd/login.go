// ABOUTME: Login command for the blog CLI
// ABOUTME: Exchanges credentials for a token and persists it

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the blog",
	Long: `Log in to the blog and persist the session token.

The password is read from --password or prompted interactively.

Exit codes:
  0 - Logged in
  1 - Invalid credentials
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted if omitted)")
}

// runLogin performs the credential exchange and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if strings.TrimSpace(loginUsername) == "" {
		fmt.Fprintln(w, "Error: --username is required")
		return 2
	}

	password := loginPassword
	if password == "" {
		fmt.Fprint(w, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		password = string(raw)
	}

	_, store := newSession()
	if err := store.Login(ctx, loginUsername, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	user := store.CurrentUser()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", user.Username)
	}
	return 0
}
