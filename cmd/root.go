// ABOUTME: Root command for the blog CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/chaitanya1270/blog-cli/internal/session"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "CLI for the blog platform",
	Long: `blog is a command-line interface for the blog platform.

Run it without a subcommand to open the interactive TUI, or use the
subcommands for scripting.

Environment Variables:
  BLOG_API_URL  Backend API URL (default: http://localhost:8000)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Optional .env file for local development
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BLOG_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("BLOG_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSession builds a client and session store backed by the config dir
func newSession() (*client.Client, *session.Store) {
	c := client.New(GetAPIURL())
	store := session.New(c, session.NewCredStore(session.DefaultConfigDir()))
	return c, store
}
