package players

import "sync"

// MockStore is an in-memory PlayerStore for tests.
// It is safe for concurrent use.
type MockStore struct {
	mu       sync.Mutex
	profiles map[string]Profile

	UpsertCalls []Profile
}

// NewMock creates a new mock PlayerStore.
func NewMock() *MockStore {
	return &MockStore{profiles: make(map[string]Profile)}
}

func (m *MockStore) Upsert(p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	m.UpsertCalls = append(m.UpsertCalls, p)
	return nil
}

func (m *MockStore) UpsertAll(profiles []Profile) error {
	for _, p := range profiles {
		if err := m.Upsert(p); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockStore) Get(playerID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[playerID]
	if !ok {
		return nil, errNotKnown(playerID)
	}
	return &p, nil
}

func (m *MockStore) GetAll() ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Profile
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockStore) IsKnown(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.profiles[playerID]
	return ok
}

type errNotKnown string

func (e errNotKnown) Error() string { return "player " + string(e) + " not found" }
