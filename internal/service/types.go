package service

import "time"

// LogFilter supports audit filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SIGNUP", "LOGIN", "LOGIN_FAILED", "REFRESH"

	// Username restricts events to one account; empty means all accounts.
	Username string
}
