package career

// Store exposes career catalog retrieval for HTTP handlers and services.
type Store interface {
	List() []Career
	FindByID(id string) (Career, bool)
}

// MemoryStore implements Store with an in-memory slice; the catalog is
// seeded at startup and never mutated afterwards.
type MemoryStore struct {
	items []Career
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied careers.
func NewMemoryStore(items []Career) *MemoryStore {
	return &MemoryStore{items: append([]Career(nil), items...)}
}

// List returns the catalog.
func (s *MemoryStore) List() []Career {
	return append([]Career(nil), s.items...)
}

// FindByID looks up a career by identifier.
func (s *MemoryStore) FindByID(id string) (Career, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Career{}, false
}
