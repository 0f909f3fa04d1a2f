// Package notify fans domain events out to best-effort sinks.
package notify

import (
	"github.com/playmo/smartdns-api/internal/models"
)

// Publisher must not block the caller on a slow or broken sink.
type Publisher interface {
	Publish(event models.Event)
}

type multi []Publisher

// Multi publishes to every non-nil publisher in order.
func Multi(publishers ...Publisher) Publisher {
	var m multi
	for _, p := range publishers {
		if p != nil {
			m = append(m, p)
		}
	}
	return m
}

func (m multi) Publish(event models.Event) {
	for _, p := range m {
		p.Publish(event)
	}
}

// Discard drops every event.
var Discard Publisher = multi(nil)
