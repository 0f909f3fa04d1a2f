package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestClient_MergeIP(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	c := NewClient("acme", "ops@acme.test", "active", nil, t0)

	if replaced := c.MergeIP("203.0.113.7", "manual", t0); replaced {
		t.Fatal("first MergeIP() replaced = true")
	}
	if replaced := c.MergeIP("198.51.100.1", "app", t0); replaced {
		t.Fatal("second MergeIP() replaced = true")
	}
	if replaced := c.MergeIP("203.0.113.7", "ddns", t1); !replaced {
		t.Fatal("duplicate MergeIP() replaced = false")
	}

	created := t0
	want := []IPEntry{
		{IP: "203.0.113.7", Source: "ddns", IsActive: true, UpdatedAt: t1},
		{IP: "198.51.100.1", Source: "app", IsActive: true, CreatedAt: &created, UpdatedAt: t0},
	}
	if diff := cmp.Diff(want, c.IPAddresses); diff != "" {
		t.Errorf("IPAddresses mismatch (-want +got):\n%s", diff)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("acme", "ops@acme.test", "active", nil, time.Now())
	if c.IPAddresses == nil || len(c.IPAddresses) != 0 {
		t.Errorf("IPAddresses = %#v, want empty non-nil slice", c.IPAddresses)
	}
	if c.Metadata == nil {
		t.Error("Metadata = nil, want empty map")
	}
}
