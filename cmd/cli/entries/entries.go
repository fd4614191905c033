package entries

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Kingsheunn/Diary/cmd/cli/client"
	"github.com/Kingsheunn/Diary/cmd/cli/output"
	"github.com/spf13/cobra"
)

// Entry mirrors the API's entry representation.
type Entry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ==========================
// Init Entries
// ==========================
func InitEntries(rootCmd *cobra.Command) {
	entriesCmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Read and write diary entries",
	}

	entriesCmd.AddCommand(
		listEntriesCmd(),
		getEntryCmd(),
		createEntryCmd(),
		updateEntryCmd(),
		deleteEntryCmd(),
	)

	rootCmd.AddCommand(entriesCmd)
}

// ==========================
// LIST
// ==========================
func listEntriesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Entries []Entry `json:"entries"`
				Count   int     `json:"count"`
			}
			if err := client.Call("GET", "/entries", nil, &resp, true); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(resp.Entries)
			}
			if resp.Count == 0 {
				fmt.Println("No entries yet.")
				return nil
			}

			rows := make([][]interface{}, 0, len(resp.Entries))
			for _, e := range resp.Entries {
				rows = append(rows, []interface{}{e.ID, e.Title, preview(e.Content, 40), e.CreatedAt.Local().Format("2006-01-02 15:04")})
			}
			output.RenderTable([]string{"ID", "Title", "Content", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var e Entry
			if err := client.Call("GET", "/entries/"+id, nil, &e, true); err != nil {
				return err
			}
			fmt.Printf("#%d %s\n%s\n\n%s\n", e.ID, e.Title, e.CreatedAt.Local().Format(time.RFC1123), e.Content)
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createEntryCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			var e Entry
			payload := map[string]string{"title": title, "content": content}
			if err := client.Call("POST", "/entries", payload, &e, true); err != nil {
				return err
			}
			fmt.Printf("Entry %d created.\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "entry title (at least 3 characters)")
	cmd.Flags().StringVar(&content, "content", "", "entry text")
	cmd.MarkFlagRequired("title")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateEntryCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the title and content of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var e Entry
			payload := map[string]string{"title": title, "content": content}
			if err := client.Call("PUT", "/entries/"+id, payload, &e, true); err != nil {
				return err
			}
			fmt.Printf("Entry %d updated.\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new text (replaces the old one)")
	cmd.MarkFlagRequired("title")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var resp struct {
				Message string `json:"message"`
				Entry   Entry  `json:"entry"`
			}
			if err := client.Call("DELETE", "/entries/"+id, nil, &resp, true); err != nil {
				return err
			}
			fmt.Printf("%s (%q)\n", resp.Message, resp.Entry.Title)
			return nil
		},
	}
}

func parseID(s string) (string, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid entry id %q", s)
	}
	return strconv.Itoa(n), nil
}

func preview(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
