package reminder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSetReminder_OnlySendsChangedFlags(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/reminder" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(Settings{DailyReminder: true, ReminderTime: "07:30", SummaryDay: 7})
	}))
	defer srv.Close()

	tokenFile := filepath.Join(t.TempDir(), "token")
	_ = os.WriteFile(tokenFile, []byte("t"), 0o600)
	t.Setenv("DIARY_API_URL", srv.URL)
	t.Setenv("DIARY_TOKEN_FILE", tokenFile)

	cmd := setReminderCmd()
	_ = cmd.Flags().Set("daily", "true")
	_ = cmd.Flags().Set("at", "07:30")
	if err := cmd.RunE(cmd, []string{}); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	if got["daily_reminder"] != true || got["weekly_reminder"] != false || got["reminder_time"] != "07:30" {
		t.Errorf("unexpected payload: %v", got)
	}
	if _, ok := got["summary_day"]; ok {
		t.Errorf("summary_day sent although --day was not given: %v", got)
	}
}
