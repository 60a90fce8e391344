// ABOUTME: Upload command for the blog CLI
// ABOUTME: Uploads an image and prints the URL for use in posts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image",
	Long: `Upload an image and print its URL. Requires a saved login token.

Pass the printed URL to blog post create --image-url.

Exit codes:
  0 - Uploaded
  1 - Not logged in or rejected by the backend
  2 - Error (connectivity, unreadable file)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUpload(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

// runUpload sends the file to the upload endpoint, returning exit code
func runUpload(ctx context.Context, w io.Writer, path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer f.Close()

	c, store := newSession()
	if !store.Resume() {
		fmt.Fprintln(w, "Error: not logged in. Run blog login first.")
		return 1
	}

	resp, err := c.UploadFile(ctx, filepath.Base(path), f)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Uploaded %s\nURL: %s\n", resp.Filename, resp.URL)
	}
	return 0
}
