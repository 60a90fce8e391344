// ABOUTME: Entry point for the blog CLI
// ABOUTME: Terminal client for the blog platform API

package main

import (
	"fmt"
	"os"

	"github.com/chaitanya1270/blog-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
