// ABOUTME: UI command launching the interactive TUI
// ABOUTME: Also wired as the default action of the bare root command

package cmd

import (
	"fmt"
	"os"

	"github.com/chaitanya1270/blog-cli/internal/logging"
	"github.com/chaitanya1270/blog-cli/internal/session"
	"github.com/chaitanya1270/blog-cli/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive TUI",
	Long:  `Open the interactive terminal UI for browsing and writing posts.`,
	Run: func(cmd *cobra.Command, args []string) {
		logging.Init(session.DefaultConfigDir())
		defer logging.Sync()

		c, store := newSession()
		if err := tui.Run(c, store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
	// Bare invocation opens the TUI
	rootCmd.Run = uiCmd.Run
}
