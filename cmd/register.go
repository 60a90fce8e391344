// ABOUTME: Register command for the blog CLI
// ABOUTME: Creates an account and logs straight in

package cmd

import (
	"context"
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
	registerUsername string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account and log in with it.

The password is read from --password or prompted interactively.

Exit codes:
  0 - Account created
  1 - Rejected by the backend (e.g. username taken)
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted if omitted)")
}

// runRegister creates the account and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	if strings.TrimSpace(registerUsername) == "" || strings.TrimSpace(registerEmail) == "" {
		fmt.Fprintln(w, "Error: --username and --email are required")
		return 2
	}

	password := registerPassword
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
	if err := store.Register(ctx, registerUsername, registerEmail, password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Registered as %s\n", store.CurrentUser().Username)
	return 0
}
