// Package validate enforces the field rules for user records: id shape,
// name and email lengths, birth date range and role membership.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"userbook/internal/types"
)

var (
	idPattern    = regexp.MustCompile(`^\d{11}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.(com|br)$`)
)

const (
	minNameLen  = 10
	maxNameLen  = 100
	minEmailLen = 15
	maxEmailLen = 50
	minYear     = 1909
	maxYear     = 2024

	// BirthLayout is the day-first input format for birth dates.
	BirthLayout = "02-01-2006"
)

// ID checks that the id is exactly 11 digits, trimming surrounding
// whitespace first.
func ID(s string) (string, error) {
	id := strings.TrimSpace(s)
	if !idPattern.MatchString(id) {
		return "", fmt.Errorf("id must be exactly 11 digits, got %q", id)
	}
	return id, nil
}

// FullName checks the name length.
func FullName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if len(name) < minNameLen || len(name) > maxNameLen {
		return "", fmt.Errorf("name must be between %d and %d characters, got %d", minNameLen, maxNameLen, len(name))
	}
	return name, nil
}

// Email checks the address shape, its length and that it carries no spaces.
func Email(s string) (string, error) {
	email := strings.TrimSpace(s)
	if strings.ContainsAny(email, " \t") {
		return "", fmt.Errorf("email must not contain spaces")
	}
	if len(email) < minEmailLen || len(email) > maxEmailLen {
		return "", fmt.Errorf("email must be between %d and %d characters, got %d", minEmailLen, maxEmailLen, len(email))
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("email %q is not a valid .com or .br address", email)
	}
	return email, nil
}

// BirthDate parses a day-first DD-MM-YYYY date and checks the year range.
func BirthDate(s string) (types.Date, error) {
	t, err := time.Parse(BirthLayout, strings.TrimSpace(s))
	if err != nil {
		return types.Date{}, fmt.Errorf("birth date must be DD-MM-YYYY: %w", err)
	}
	d := types.DateOf(t)
	if d.Year < minYear || d.Year > maxYear {
		return types.Date{}, fmt.Errorf("birth year must be between %d and %d, got %d", minYear, maxYear, d.Year)
	}
	return d, nil
}

// Role parses the role name, case-insensitively.
func Role(s string) (types.Role, error) {
	return types.ParseRole(s)
}

// User validates all fields and assembles the record. The first failing
// field aborts; later fields are not inspected.
func User(id, fullName, email, birth, role string) (types.User, error) {
	validID, err := ID(id)
	if err != nil {
		return types.User{}, err
	}
	validName, err := FullName(fullName)
	if err != nil {
		return types.User{}, err
	}
	validEmail, err := Email(email)
	if err != nil {
		return types.User{}, err
	}
	validBirth, err := BirthDate(birth)
	if err != nil {
		return types.User{}, err
	}
	validRole, err := Role(role)
	if err != nil {
		return types.User{}, err
	}
	return types.User{
		ID:       validID,
		FullName: validName,
		Email:    validEmail,
		Birth:    validBirth,
		Role:     validRole,
	}, nil
}
