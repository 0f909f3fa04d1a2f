package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

type memCollection struct {
	order []string
	docs  map[string]bson.Raw
}

// MemoryStore keeps BSON bodies in process. Scans return insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

func (s *MemoryStore) collection(name string) *memCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]bson.Raw)}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Get(_ context.Context, collection, id string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return ErrNotFound
	}
	raw, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (s *MemoryStore) Add(_ context.Context, collection string, doc interface{}) (string, error) {
	id := newID()
	raw, err := encode(id, doc)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	c.docs[id] = raw
	c.order = append(c.order, id)
	return id, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return ErrNotFound
	}
	raw, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}

	updated, err := applySet(raw, fields)
	if err != nil {
		return err
	}
	c.docs[id] = updated
	return nil
}

func (s *MemoryStore) Scan(_ context.Context, collection string, filter *Filter) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}

	var docs []Document
	for _, id := range c.order {
		raw := c.docs[id]
		ok, err := matches(raw, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, Document{ID: id, Raw: raw})
		}
	}
	return docs, nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string, filter *Filter) (int64, error) {
	docs, err := s.Scan(ctx, collection, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
