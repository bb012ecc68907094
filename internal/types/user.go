// Package types holds the record definitions shared by the store, the
// validators and the command layer.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the access level attached to a user record. The set is closed;
// anything outside it is rejected at parse time and at unmarshal time.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
	RoleGuest Role = "Guest"
)

// ParseRole maps free-form input to a Role, ignoring case and surrounding
// whitespace.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	case "guest":
		return RoleGuest, nil
	default:
		return "", fmt.Errorf("unknown role %q: must be Admin, User or Guest", s)
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed := Role(s)
	if !parsed.Valid() {
		return fmt.Errorf("unknown role %q", s)
	}
	*r = parsed
	return nil
}

// Date is a calendar day without a time of day or a zone. It serializes as
// "YYYY-MM-DD" in snapshots.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate builds a Date and rejects combinations that are not a real
// calendar day, such as February 29 outside a leap year.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%04d-%02d-%02d is not a valid date", year, int(month), day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

// User is one record of the collection, keyed by its 11-digit ID.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Birth    Date   `json:"birth"`
	Role     Role   `json:"role"`
}

// Age returns the user's completed years as of today, counting the birthday
// itself as already completed.
func (u User) Age(today Date) int {
	age := today.Year - u.Birth.Year
	if today.Month < u.Birth.Month || (today.Month == u.Birth.Month && today.Day < u.Birth.Day) {
		age--
	}
	return age
}
