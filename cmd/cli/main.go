package main

import (
	"fmt"
	"os"

	"github.com/crucial707/newsdesk/cmd/cli/articles"
	"github.com/crucial707/newsdesk/cmd/cli/auth"
	"github.com/crucial707/newsdesk/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	articles.InitArticles(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
