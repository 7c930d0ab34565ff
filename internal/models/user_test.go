package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUser_PublicOmitsHash(t *testing.T) {
	u := User{
		ID:           3,
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		Name:         "Alice",
		Points:       12,
		Picks:        map[string]string{"matchup0": "New York (NFC)"},
	}

	b, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(b)
	for _, leak := range []string{"password", "$2a$10$secret", "hash"} {
		if strings.Contains(strings.ToLower(body), strings.ToLower(leak)) {
			t.Fatalf("public projection leaks %q: %s", leak, body)
		}
	}
	if !strings.Contains(body, `"username":"alice"`) || !strings.Contains(body, `"points":12`) {
		t.Fatalf("unexpected projection: %s", body)
	}
}

func TestUser_PublicNilPicksBecomesEmptyObject(t *testing.T) {
	b, _ := json.Marshal(User{Username: "bob"}.Public())
	if !strings.Contains(string(b), `"picks":{}`) {
		t.Fatalf("expected empty picks object, got %s", b)
	}
}
