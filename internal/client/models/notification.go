// Package models holds the client-side records kept in the local database.
package models

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
)

// Action is an optional follow-up attached to a notification, for example
// the command that opens the conversation it is about.
type Action struct {
	Label string
	URL   string
}

type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Action    *Action
	Read      bool
	CreatedAt time.Time
}
