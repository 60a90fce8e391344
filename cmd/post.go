// ABOUTME: Post command group for the blog CLI
// ABOUTME: View, create, update, and delete individual posts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/spf13/cobra"
)

var (
	postTitle    string
	postContent  string
	postTags     string
	postImageURL string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Work with individual posts",
}

var postViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show a post with its comments",
	Long: `Show a post with its comments.

Exit codes:
  0 - Success
  1 - Post not found
  2 - Error (connectivity, invalid input)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPostView(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new post",
	Long: `Create a new post. Requires a saved login token.

Exit codes:
  0 - Created
  1 - Not logged in or rejected by the backend
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPostCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var postUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update one of your posts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPostUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPostDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postViewCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postUpdateCmd)
	postCmd.AddCommand(postDeleteCmd)

	for _, c := range []*cobra.Command{postCreateCmd, postUpdateCmd} {
		c.Flags().StringVar(&postTitle, "title", "", "Post title")
		c.Flags().StringVar(&postContent, "content", "", "Post content")
		c.Flags().StringVar(&postTags, "tags", "", "Comma-separated tags")
		c.Flags().StringVar(&postImageURL, "image-url", "", "Image URL (from blog upload)")
	}
}

// parsePostID validates a numeric post id argument
func parsePostID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

// splitTags turns the comma-separated flag into trimmed tag names
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// runPostView fetches and prints one post, returning exit code
func runPostView(ctx context.Context, w io.Writer, arg string) int {
	id, err := parsePostID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := client.New(GetAPIURL())
	post, err := c.GetPost(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintf(w, "Post %d not found\n", id)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(post, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatPost(c, post))
	return 0
}

// formatPost formats a single post for human readability
func formatPost(c *client.Client, post *client.Post) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\nby %s\n", post.Title, post.Author.Username))
	if len(post.Tags) > 0 {
		sb.WriteString("[" + strings.Join(post.Tags, ", ") + "]\n")
	}
	if post.ImageURL != "" {
		sb.WriteString("Image: " + c.ResolveURL(post.ImageURL) + "\n")
	}
	sb.WriteString("\n" + post.Content + "\n")

	sb.WriteString(fmt.Sprintf("\nComments (%d):\n", len(post.Comments)))
	if len(post.Comments) == 0 {
		sb.WriteString("  No comments yet\n")
	}
	for _, cm := range post.Comments {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", cm.Author.Username, cm.Content))
	}
	return sb.String()
}

// runPostCreate creates a post from flags, returning exit code
func runPostCreate(ctx context.Context, w io.Writer) int {
	if strings.TrimSpace(postTitle) == "" || strings.TrimSpace(postContent) == "" {
		fmt.Fprintln(w, "Error: --title and --content are required")
		return 2
	}

	c, store := newSession()
	if !store.Resume() {
		fmt.Fprintln(w, "Error: not logged in. Run blog login first.")
		return 1
	}

	resp, err := c.CreatePost(ctx, &client.CreatePostInput{
		Title:    postTitle,
		Content:  postContent,
		Tags:     splitTags(postTags),
		ImageURL: postImageURL,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp.Post, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Created post #%d: %s\n", resp.Post.ID, resp.Post.Title)
	}
	return 0
}

// runPostUpdate updates a post from flags, returning exit code
func runPostUpdate(ctx context.Context, w io.Writer, arg string) int {
	id, err := parsePostID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if strings.TrimSpace(postTitle) == "" || strings.TrimSpace(postContent) == "" {
		fmt.Fprintln(w, "Error: --title and --content are required")
		return 2
	}

	c, store := newSession()
	if !store.Resume() {
		fmt.Fprintln(w, "Error: not logged in. Run blog login first.")
		return 1
	}

	input := &client.UpdatePostInput{
		Title:    postTitle,
		Content:  postContent,
		Tags:     splitTags(postTags),
		ImageURL: postImageURL,
	}
	if err := c.UpdatePost(ctx, id, input); err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintf(w, "Post %d not found\n", id)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Updated post #%d\n", id)
	return 0
}

// runPostDelete deletes a post, returning exit code
func runPostDelete(ctx context.Context, w io.Writer, arg string) int {
	id, err := parsePostID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c, store := newSession()
	if !store.Resume() {
		fmt.Fprintln(w, "Error: not logged in. Run blog login first.")
		return 1
	}

	if err := c.DeletePost(ctx, id); err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintf(w, "Post %d not found\n", id)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Deleted post #%d\n", id)
	return 0
}
