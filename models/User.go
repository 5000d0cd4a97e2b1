package models

import "strings"

// User represents the identity of the active session within a browser profile.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DefaultEmailDomain is used to synthesize an address for accounts that log in without one.
const DefaultEmailDomain = "example.com"

// SynthesizedEmail returns the address assigned to a user on login.
func SynthesizedEmail(username string) string {
	return strings.TrimSpace(username) + "@" + DefaultEmailDomain
}

// DefaultCredentials returns a fresh copy of the built-in demo accounts.
func DefaultCredentials() map[string]string {
	return map[string]string{
		"admin":   "password123",
		"user":    "mypass",
		"student": "study123",
	}
}
