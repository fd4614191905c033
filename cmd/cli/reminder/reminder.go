package reminder

import (
	"fmt"

	"github.com/Kingsheunn/Diary/cmd/cli/client"
	"github.com/Kingsheunn/Diary/cmd/cli/output"
	"github.com/spf13/cobra"
)

// Settings mirrors the API's reminder preferences.
type Settings struct {
	DailyReminder  bool   `json:"daily_reminder"`
	ReminderTime   string `json:"reminder_time"`
	WeeklyReminder bool   `json:"weekly_reminder"`
	SummaryDay     int    `json:"summary_day"`
}

var dayNames = []string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func InitReminder(rootCmd *cobra.Command) {
	reminderCmd := &cobra.Command{
		Use:   "reminder",
		Short: "Show or change e-mail reminders",
	}
	reminderCmd.AddCommand(getReminderCmd(), setReminderCmd())
	rootCmd.AddCommand(reminderCmd)
}

func getReminderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show reminder settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var s Settings
			if err := client.Call("GET", "/reminder", nil, &s, true); err != nil {
				return err
			}
			render(s)
			return nil
		},
	}
}

func setReminderCmd() *cobra.Command {
	var daily, weekly bool
	var at string
	var day int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change reminder settings",
		Long:  "Enable or disable the daily prompt and the weekly summary. Omitted --at and --day keep their current value.",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{"daily_reminder": daily, "weekly_reminder": weekly}
			if cmd.Flags().Changed("at") {
				payload["reminder_time"] = at
			}
			if cmd.Flags().Changed("day") {
				payload["summary_day"] = day
			}

			var s Settings
			if err := client.Call("PUT", "/reminder", payload, &s, true); err != nil {
				return err
			}
			fmt.Println("Reminder settings saved.")
			render(s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&daily, "daily", false, "send a daily writing prompt")
	cmd.Flags().StringVar(&at, "at", "", "daily prompt time, HH:MM (24h)")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "send a weekly summary")
	cmd.Flags().IntVar(&day, "day", 0, "weekly summary day, 1=Monday ... 7=Sunday")
	return cmd
}

func render(s Settings) {
	day := fmt.Sprint(s.SummaryDay)
	if s.SummaryDay >= 1 && s.SummaryDay <= 7 {
		day = dayNames[s.SummaryDay]
	}
	output.RenderTable(
		[]string{"Daily", "At", "Weekly", "Summary day"},
		[][]interface{}{{s.DailyReminder, s.ReminderTime, s.WeeklyReminder, day}},
	)
}
