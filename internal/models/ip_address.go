package models

import "time"

type IPAddress struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	ClientID      string     `json:"client_id" bson:"client_id"`
	IPAddress     string     `json:"ip_address" bson:"ip_address"`
	IsWhitelisted bool       `json:"is_whitelisted" bson:"is_whitelisted"`
	WhitelistedAt *time.Time `json:"whitelisted_at,omitempty" bson:"whitelisted_at,omitempty"`
	Source        string     `json:"source" bson:"source"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

type WhitelistEntry struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	IPAddress     string    `json:"ip_address" bson:"ip_address"`
	ClientID      string    `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Protocol      string    `json:"protocol" bson:"protocol"`
	WhitelistedBy string    `json:"whitelisted_by" bson:"whitelisted_by"`
	WhitelistedAt time.Time `json:"whitelisted_at" bson:"whitelisted_at"`
}

type Stats struct {
	TotalClients          int64 `json:"total_clients"`
	TotalIPs              int64 `json:"total_ips"`
	WhitelistedIPs        int64 `json:"whitelisted_ips"`
	TotalWhitelistEntries int64 `json:"total_whitelist_entries"`
}
