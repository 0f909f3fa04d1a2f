// Package store is a thin accessor over a schemaless collection store.
//
// Documents are addressed by collection name and a string id assigned by the
// store on Add. Bodies are BSON in every backend, so a model decoded from the
// in-memory or SQLite store looks exactly like one decoded from MongoDB.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrUnavailable = errors.New("document store not initialized")
)

type Store interface {
	Get(ctx context.Context, collection, id string, out interface{}) error
	Add(ctx context.Context, collection string, doc interface{}) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Scan(ctx context.Context, collection string, filter *Filter) ([]Document, error)
	Count(ctx context.Context, collection string, filter *Filter) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Document is one scanned record. Raw includes the _id element.
type Document struct {
	ID  string
	Raw bson.Raw
}

func (d Document) Decode(out interface{}) error {
	return bson.Unmarshal(d.Raw, out)
}

// Filter is a single-field equality match. A nil filter matches everything.
type Filter struct {
	Field string
	Value interface{}
}

func Eq(field string, value interface{}) *Filter {
	return &Filter{Field: field, Value: value}
}

func (f *Filter) bson() bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M{f.Field: f.Value}
}

// Available reports whether s can serve requests at all.
func Available(s Store) bool {
	if s == nil {
		return false
	}
	_, disabled := s.(unavailable)
	return !disabled
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// encode marshals doc and stamps id as its leading _id element.
func encode(id string, doc interface{}) (bson.Raw, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var elems bson.D
	if err := bson.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	out := make(bson.D, 0, len(elems)+1)
	out = append(out, bson.E{Key: "_id", Value: id})
	for _, e := range elems {
		if e.Key != "_id" {
			out = append(out, e)
		}
	}
	return bson.Marshal(out)
}

// applySet returns raw with fields overwritten or appended, like $set.
func applySet(raw bson.Raw, fields map[string]interface{}) (bson.Raw, error) {
	var elems bson.D
	if err := bson.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	for key, value := range fields {
		replaced := false
		for i := range elems {
			if elems[i].Key == key {
				elems[i].Value = value
				replaced = true
				break
			}
		}
		if !replaced {
			elems = append(elems, bson.E{Key: key, Value: value})
		}
	}
	return bson.Marshal(elems)
}

func matches(raw bson.Raw, f *Filter) (bool, error) {
	if f == nil {
		return true, nil
	}

	got, err := raw.LookupErr(f.Field)
	if err != nil {
		return false, nil
	}

	t, data, err := bson.MarshalValue(f.Value)
	if err != nil {
		return false, fmt.Errorf("invalid filter value for %s: %w", f.Field, err)
	}
	return got.Equal(bson.RawValue{Type: t, Value: data}), nil
}

func documentID(raw bson.Raw) string {
	id, _ := raw.Lookup("_id").StringValueOK()
	return id
}

type unavailable struct{}

// Unavailable returns a Store that fails every call with ErrUnavailable. It
// stands in when no credentials are configured or the connection failed.
func Unavailable() Store {
	return unavailable{}
}

func (unavailable) Get(context.Context, string, string, interface{}) error {
	return ErrUnavailable
}

func (unavailable) Add(context.Context, string, interface{}) (string, error) {
	return "", ErrUnavailable
}

func (unavailable) Update(context.Context, string, string, map[string]interface{}) error {
	return ErrUnavailable
}

func (unavailable) Scan(context.Context, string, *Filter) ([]Document, error) {
	return nil, ErrUnavailable
}

func (unavailable) Count(context.Context, string, *Filter) (int64, error) {
	return 0, ErrUnavailable
}

func (unavailable) Ping(context.Context) error {
	return ErrUnavailable
}

func (unavailable) Close(context.Context) error {
	return nil
}
