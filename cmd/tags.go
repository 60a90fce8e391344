// ABOUTME: Tags command for the blog CLI
// ABOUTME: Lists all tags known to the backend

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTags(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

// runTags fetches and prints the tag list, returning exit code
func runTags(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())
	tags, err := c.GetTags(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(tags, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags")
		return 0
	}
	for _, tag := range tags {
		fmt.Fprintln(w, tag.Name)
	}
	return 0
}
