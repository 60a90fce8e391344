// ABOUTME: Posts command for the blog CLI
// ABOUTME: Lists posts with pagination and tag filtering

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

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	postsPage    int
	postsPerPage int
	postsTag     string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts",
	Long: `List posts, newest first.

Exit codes:
  0 - Success
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPosts(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.Flags().IntVar(&postsPage, "page", 1, "Page number")
	postsCmd.Flags().IntVar(&postsPerPage, "per-page", 10, "Posts per page")
	postsCmd.Flags().StringVar(&postsTag, "tag", "", "Filter by tag")
}

// runPosts fetches and prints a page of posts, returning exit code
func runPosts(ctx context.Context, w io.Writer) int {
	if postsPage < 1 || postsPerPage < 1 {
		fmt.Fprintln(w, "Error: --page and --per-page must be positive")
		return 2
	}

	c := client.New(GetAPIURL())
	page, err := c.GetPosts(ctx, postsPage, postsPerPage, postsTag)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatPostList(page, postsTag))
	return 0
}

// formatPostList formats a page of posts for human readability
func formatPostList(page *client.PostPage, tag string) string {
	var sb strings.Builder

	if len(page.Posts) == 0 {
		sb.WriteString("No posts found")
		if tag != "" {
			sb.WriteString(fmt.Sprintf(" for tag %q", tag))
		}
		return sb.String()
	}

	for _, p := range page.Posts {
		sb.WriteString(fmt.Sprintf("#%-4d %s\n", p.ID, p.Title))
		sb.WriteString(fmt.Sprintf("      by %s", p.Author.Username))
		if len(p.Tags) > 0 {
			sb.WriteString("  [" + strings.Join(p.Tags, ", ") + "]")
		}
		if p.CommentsCount > 0 {
			sb.WriteString(fmt.Sprintf("  %d comment(s)", p.CommentsCount))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\nPage %d of %d (%d post(s) total)", page.CurrentPage, page.Pages, page.Total))
	return sb.String()
}
