package saves

import (
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// store is where save data ends up: gdata on disk, or memory when
// persistence is unavailable.
type store interface {
	exists(key string) bool
	load(key string) ([]byte, error)
	save(key string, data []byte) error
}

const savesObject = "saves"

type gdataStore struct {
	m *gdata.Manager
}

func (s gdataStore) exists(key string) bool {
	return s.m.ObjectPropExists(savesObject, key)
}

func (s gdataStore) load(key string) ([]byte, error) {
	return s.m.LoadObjectProp(savesObject, key)
}

func (s gdataStore) save(key string, data []byte) error {
	return s.m.SaveObjectProp(savesObject, key, data)
}

type memStore struct {
	mu    sync.Mutex
	props map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{props: make(map[string][]byte)}
}

func (s *memStore) exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.props[key]
	return ok
}

func (s *memStore) load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.props[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *memStore) save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[key] = append([]byte(nil), data...)
	return nil
}
