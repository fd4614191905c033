package main

import (
	"fmt"
	"os"

	"github.com/Kingsheunn/Diary/cmd/cli/auth"
	"github.com/Kingsheunn/Diary/cmd/cli/entries"
	"github.com/Kingsheunn/Diary/cmd/cli/reminder"
	"github.com/Kingsheunn/Diary/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	entries.InitEntries(rootCmd)
	reminder.InitReminder(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
