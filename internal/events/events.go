package events

import "time"

// Event types
const (
	MemberRegistered = "member.registered"
)

// Stream names
const (
	MemberEventsStream = "member.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// MemberRegisteredEvent is published after a successful registration so
// downstream consumers (onboarding mailers, back-office tooling) can react.
type MemberRegisteredEvent struct {
	MemberID  string `json:"memberId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
