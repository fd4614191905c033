package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("DIARY_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	if _, err := LoadToken(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if err := SaveToken("abc"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if tok, err := LoadToken(); err != nil || tok != "abc" {
		t.Fatalf("LoadToken: %q %v", tok, err)
	}
	if removed, err := DeleteToken(); err != nil || !removed {
		t.Fatalf("DeleteToken: %v %v", removed, err)
	}
	if removed, _ := DeleteToken(); removed {
		t.Error("second delete should report nothing removed")
	}
}

func TestAPIURL(t *testing.T) {
	t.Setenv("DIARY_API_URL", "")
	if got := APIURL(); got != defaultAPIURL {
		t.Errorf("default: got %q", got)
	}
	t.Setenv("DIARY_API_URL", "https://diary.example/")
	if got := APIURL(); got != "https://diary.example" {
		t.Errorf("trailing slash not trimmed: %q", got)
	}
}
