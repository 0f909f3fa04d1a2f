package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testDoc struct {
	ID     string   `bson:"_id,omitempty"`
	Name   string   `bson:"name"`
	Active bool     `bson:"active"`
	Tags   []string `bson:"tags"`
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "docs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close(context.Background()) })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore_AddGet(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id, err := s.Add(ctx, "things", testDoc{Name: "alpha", Active: true, Tags: []string{"a"}})
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if id == "" {
				t.Fatal("Add() returned empty id")
			}

			var got testDoc
			if err := s.Get(ctx, "things", id, &got); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			want := testDoc{ID: id, Name: "alpha", Active: true, Tags: []string{"a"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Get() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var got testDoc
			err := s.Get(context.Background(), "things", "nope", &got)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_Update(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id, err := s.Add(ctx, "things", testDoc{Name: "alpha"})
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}

			err = s.Update(ctx, "things", id, map[string]interface{}{
				"active": true,
				"tags":   []string{"x", "y"},
			})
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			var got testDoc
			if err := s.Get(ctx, "things", id, &got); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			want := testDoc{ID: id, Name: "alpha", Active: true, Tags: []string{"x", "y"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("after Update() mismatch (-want +got):\n%s", diff)
			}

			if err := s.Update(ctx, "things", "missing", map[string]interface{}{"active": true}); !errors.Is(err, ErrNotFound) {
				t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_ScanAndCount(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, d := range []testDoc{
				{Name: "a", Active: true},
				{Name: "b"},
				{Name: "c", Active: true},
			} {
				if _, err := s.Add(ctx, "things", d); err != nil {
					t.Fatalf("Add() error = %v", err)
				}
			}

			docs, err := s.Scan(ctx, "things", Eq("active", true))
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			var names []string
			for _, d := range docs {
				var td testDoc
				if err := d.Decode(&td); err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if td.ID != d.ID {
					t.Errorf("decoded id %q, document id %q", td.ID, d.ID)
				}
				names = append(names, td.Name)
			}
			if diff := cmp.Diff([]string{"a", "c"}, names); diff != "" {
				t.Errorf("Scan() names mismatch (-want +got):\n%s", diff)
			}

			total, err := s.Count(ctx, "things", nil)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if total != 3 {
				t.Errorf("Count(nil) = %d, want 3", total)
			}

			inactive, err := s.Count(ctx, "things", Eq("active", false))
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if inactive != 1 {
				t.Errorf("Count(active=false) = %d, want 1", inactive)
			}

			empty, err := s.Scan(ctx, "nothing", nil)
			if err != nil {
				t.Fatalf("Scan(empty) error = %v", err)
			}
			if len(empty) != 0 {
				t.Errorf("Scan(empty) = %d docs, want 0", len(empty))
			}
		})
	}
}

func TestUnavailable(t *testing.T) {
	s := Unavailable()
	if Available(s) {
		t.Error("Available(Unavailable()) = true")
	}
	if !Available(NewMemoryStore()) {
		t.Error("Available(memory) = false")
	}
	if _, err := s.Add(context.Background(), "things", testDoc{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Add() error = %v, want ErrUnavailable", err)
	}
}
