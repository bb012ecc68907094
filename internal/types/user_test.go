package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"Admin", RoleAdmin, false},
		{"admin", RoleAdmin, false},
		{"ADMIN", RoleAdmin, false},
		{"  user ", RoleUser, false},
		{"Guest", RoleGuest, false},
		{"root", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q) expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRoleUnmarshalRejectsUnknown(t *testing.T) {
	var r Role
	if err := json.Unmarshal([]byte(`"Superuser"`), &r); err == nil {
		t.Error("expected unmarshal of unknown role to fail")
	}
	if err := json.Unmarshal([]byte(`"Guest"`), &r); err != nil {
		t.Fatalf("unmarshal Guest: %v", err)
	}
	if r != RoleGuest {
		t.Errorf("got %q, want %q", r, RoleGuest)
	}
}

func TestNewDate(t *testing.T) {
	if _, err := NewDate(1995, time.February, 29); err == nil {
		t.Error("1995-02-29 is not a real day")
	}
	if _, err := NewDate(1996, time.February, 29); err != nil {
		t.Errorf("1996-02-29 is a real day: %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	d, err := NewDate(1995, time.May, 15)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"1995-05-15"` {
		t.Errorf("marshal = %s, want \"1995-05-15\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %+v, want %+v", back, d)
	}

	if err := json.Unmarshal([]byte(`"15-05-1995"`), &back); err == nil {
		t.Error("day-first strings belong to input parsing, not the snapshot")
	}
}

func TestUserJSONFieldNames(t *testing.T) {
	birth, _ := NewDate(1995, time.May, 15)
	u := User{
		ID:       "12345678901",
		FullName: "Test User Name",
		Email:    "person.one@example.com",
		Birth:    birth,
		Role:     RoleUser,
	}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"id":        "12345678901",
		"full_name": "Test User Name",
		"email":     "person.one@example.com",
		"birth":     "1995-05-15",
		"role":      "User",
	}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Errorf("wire format mismatch (-want +got):\n%s", diff)
	}
}

func TestAge(t *testing.T) {
	birth, _ := NewDate(1995, time.May, 15)
	u := User{Birth: birth}

	tests := []struct {
		today Date
		want  int
	}{
		{Date{2025, time.May, 14}, 29}, // day before birthday
		{Date{2025, time.May, 15}, 30}, // birthday
		{Date{2025, time.May, 16}, 30},
		{Date{2025, time.April, 30}, 29}, // earlier month
		{Date{2025, time.June, 1}, 30},   // later month
	}
	for _, tt := range tests {
		if got := u.Age(tt.today); got != tt.want {
			t.Errorf("Age(%s) = %d, want %d", tt.today, got, tt.want)
		}
	}
}
