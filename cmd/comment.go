// ABOUTME: Comment command for the blog CLI
// ABOUTME: Adds a comment to a post using the saved token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/spf13/cobra"
)

var commentContent string

var commentCmd = &cobra.Command{
	Use:   "comment <post-id>",
	Short: "Comment on a post",
	Long: `Comment on a post. Requires a saved login token.

Exit codes:
  0 - Comment added
  1 - Not logged in, post not found, or rejected
  2 - Error (connectivity, invalid input)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runComment(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(commentCmd)
	commentCmd.Flags().StringVarP(&commentContent, "message", "m", "", "Comment text")
}

// runComment posts a comment, returning exit code
func runComment(ctx context.Context, w io.Writer, arg string) int {
	id, err := parsePostID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if strings.TrimSpace(commentContent) == "" {
		fmt.Fprintln(w, "Error: --message is required")
		return 2
	}

	c, store := newSession()
	if !store.Resume() {
		fmt.Fprintln(w, "Error: not logged in. Run blog login first.")
		return 1
	}

	resp, err := c.CreateComment(ctx, id, commentContent)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintf(w, "Post %d not found\n", id)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Comment #%d added to post #%d\n", resp.Comment.ID, id)
	return 0
}
