package models

import (
	"time"
)

type Client struct {
	ID          string                 `json:"id" bson:"_id,omitempty"`
	Name        string                 `json:"name" bson:"name"`
	Email       string                 `json:"email" bson:"email"`
	Status      string                 `json:"status" bson:"status"`
	CreatedAt   time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at" bson:"updated_at"`
	IPAddresses []IPEntry              `json:"ip_addresses" bson:"ip_addresses"`
	Metadata    map[string]interface{} `json:"metadata" bson:"metadata"`
}

// IPEntry is embedded in Client. CreatedAt is only set when the entry is first
// appended; a replacement entry carries UpdatedAt alone.
type IPEntry struct {
	IP        string     `json:"ip" bson:"ip"`
	Source    string     `json:"source" bson:"source"`
	IsActive  bool       `json:"is_active" bson:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

func NewClient(name, email, status string, metadata map[string]interface{}, now time.Time) *Client {
	c := &Client{
		Name:      name,
		Email:     email,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  metadata,
	}
	c.Normalize()
	return c
}

// Normalize makes empty collections encode as [] and {} rather than null.
func (c *Client) Normalize() {
	if c.IPAddresses == nil {
		c.IPAddresses = []IPEntry{}
	}
	if c.Metadata == nil {
		c.Metadata = map[string]interface{}{}
	}
}

// MergeIP overwrites the entry whose IP matches literally, or appends a new one.
func (c *Client) MergeIP(ip, source string, now time.Time) (replaced bool) {
	entry := IPEntry{
		IP:        ip,
		Source:    source,
		IsActive:  true,
		UpdatedAt: now,
	}

	for i := range c.IPAddresses {
		if c.IPAddresses[i].IP == ip {
			c.IPAddresses[i] = entry
			return true
		}
	}

	created := now
	entry.CreatedAt = &created
	c.IPAddresses = append(c.IPAddresses, entry)
	return false
}
