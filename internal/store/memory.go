package store

import (
	"context"
	"sync"
	"time"
)

// Memory is a map-backed Store guarded by a RWMutex. Reads and returned
// values are defensive clones, so callers can mutate results freely without
// reaching into the store's state.
type Memory[T Entity[T]] struct {
	mu    sync.RWMutex
	items map[string]T
	now   func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory[T Entity[T]]() *Memory[T] {
	return &Memory[T]{
		items: make(map[string]T),
		now:   time.Now,
	}
}

func (m *Memory[T]) Add(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[entity.EntityID()] = entity.Clone()
	return nil
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	item, ok := m.items[id]
	if !ok {
		return zero, nil
	}
	return item.Clone(), nil
}

func (m *Memory[T]) GetAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (m *Memory[T]) Update(_ context.Context, id string, mutate func(T) error) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	current, ok := m.items[id]
	if !ok {
		return zero, nil
	}

	staged := current.Clone()
	if err := mutate(staged); err != nil {
		return zero, err
	}
	if fields := staged.Validate(); len(fields) > 0 {
		return zero, validationError(fields)
	}
	staged.Touch(m.now().UTC())

	m.items[id] = staged
	return staged.Clone(), nil
}

func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *Memory[T]) GetByAttribute(_ context.Context, name string, value any) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	for _, item := range m.items {
		got, ok := item.Attr(name)
		if ok && got == value {
			return item.Clone(), nil
		}
	}
	return zero, nil
}

func (m *Memory[T]) ListByAttribute(_ context.Context, name string, value any) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []T
	for _, item := range m.items {
		got, ok := item.Attr(name)
		if ok && got == value {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

// MemoryLinks keeps the place-amenity association in paired index maps so
// lookups from either side stay O(degree).
type MemoryLinks struct {
	mu        sync.RWMutex
	byPlace   map[string]map[string]struct{}
	byAmenity map[string]map[string]struct{}
}

// NewMemoryLinks creates an empty in-memory link store.
func NewMemoryLinks() *MemoryLinks {
	return &MemoryLinks{
		byPlace:   make(map[string]map[string]struct{}),
		byAmenity: make(map[string]map[string]struct{}),
	}
}

func (l *MemoryLinks) Link(_ context.Context, placeID, amenityID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byPlace[placeID][amenityID]; ok {
		return false, nil
	}
	if l.byPlace[placeID] == nil {
		l.byPlace[placeID] = make(map[string]struct{})
	}
	if l.byAmenity[amenityID] == nil {
		l.byAmenity[amenityID] = make(map[string]struct{})
	}
	l.byPlace[placeID][amenityID] = struct{}{}
	l.byAmenity[amenityID][placeID] = struct{}{}
	return true, nil
}

func (l *MemoryLinks) Unlink(_ context.Context, placeID, amenityID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byPlace[placeID][amenityID]; !ok {
		return false, nil
	}
	delete(l.byPlace[placeID], amenityID)
	delete(l.byAmenity[amenityID], placeID)
	return true, nil
}

func (l *MemoryLinks) AmenityIDs(_ context.Context, placeID string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.byPlace[placeID]))
	for id := range l.byPlace[placeID] {
		out = append(out, id)
	}
	return out, nil
}

func (l *MemoryLinks) PlaceIDs(_ context.Context, amenityID string) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.byAmenity[amenityID]))
	for id := range l.byAmenity[amenityID] {
		out = append(out, id)
	}
	return out, nil
}

func (l *MemoryLinks) UnlinkPlace(_ context.Context, placeID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for amenityID := range l.byPlace[placeID] {
		delete(l.byAmenity[amenityID], placeID)
	}
	delete(l.byPlace, placeID)
	return nil
}

func (l *MemoryLinks) UnlinkAmenity(_ context.Context, amenityID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for placeID := range l.byAmenity[amenityID] {
		delete(l.byPlace[placeID], amenityID)
	}
	delete(l.byAmenity, amenityID)
	return nil
}
