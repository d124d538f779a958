package stats

import "sync"

var _ StatsStore = (*MockStore)(nil)

// MockStore is an in-memory StatsStore for tests.
type MockStore struct {
	mu       sync.Mutex
	Counters map[string]int
	PerDay   map[string]int
}

// NewMock creates a new mock StatsStore.
func NewMock() *MockStore {
	return &MockStore{
		Counters: make(map[string]int),
		PerDay:   make(map[string]int),
	}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.Counters))
	for k, v := range m.Counters {
		out[k] = v
	}
	return out, nil
}

func (m *MockStore) BookingsPerDay() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.PerDay))
	for k, v := range m.PerDay {
		out[k] = v
	}
	return out, nil
}

// Count returns the current value of a counter key.
func (m *MockStore) Count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counters[key]
}
