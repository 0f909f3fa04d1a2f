package models

import "time"

// Event is a domain notification pushed to dashboards. It is never persisted.
type Event struct {
	Type        string    `json:"type"`
	ClientID    string    `json:"client_id,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	Whitelisted bool      `json:"whitelisted"`
	Timestamp   time.Time `json:"timestamp"`
}
