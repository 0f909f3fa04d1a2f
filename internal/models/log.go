package models

import (
	"time"
)

type LogEntry struct {
	ID        string      `json:"id,omitempty" bson:"_id,omitempty"`
	Endpoint  string      `json:"endpoint" bson:"endpoint"`
	Method    string      `json:"method" bson:"method"`
	Status    int         `json:"status" bson:"status"`
	Data      interface{} `json:"data,omitempty" bson:"data,omitempty"`
	IP        string      `json:"ip,omitempty" bson:"ip,omitempty"`
	RequestID string      `json:"request_id,omitempty" bson:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
