// ABOUTME: Dashboard command for the blog CLI
// ABOUTME: Prints the logged-in user's activity stats

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

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your activity stats",
	Long: `Show your activity stats and recent posts. Requires a saved login token.

Exit codes:
  0 - Success
  1 - Not logged in
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboard(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard fetches and prints the activity overview, returning exit code
func runDashboard(ctx context.Context, w io.Writer) int {
	c, store := newSession()
	if !store.Resume() {
		fmt.Fprintln(w, "Error: not logged in. Run blog login first.")
		return 1
	}

	dash, err := c.GetDashboard(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(dash, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Posts:             %d\n", dash.Stats.PostsCount)
	fmt.Fprintf(w, "Comments made:     %d\n", dash.Stats.CommentsMade)
	fmt.Fprintf(w, "Comments received: %d\n", dash.Stats.CommentsReceived)

	fmt.Fprintln(w, "\nRecent posts:")
	if len(dash.RecentPosts) == 0 {
		fmt.Fprintln(w, "  none")
		return 0
	}
	for _, p := range dash.RecentPosts {
		fmt.Fprintf(w, "  #%-4d %s", p.ID, p.Title)
		if p.CreatedAt != "" {
			fmt.Fprintf(w, "  (%s)", p.CreatedAt)
		}
		fmt.Fprintln(w)
	}
	return 0
}
