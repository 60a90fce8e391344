// ABOUTME: Logout command for the blog CLI
// ABOUTME: Discards the persisted session token

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the saved token",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the persisted credential and returns exit code
func runLogout(w io.Writer) int {
	_, store := newSession()
	store.Logout()
	fmt.Fprintln(w, "Logged out")
	return 0
}
