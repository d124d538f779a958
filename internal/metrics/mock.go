package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a Metrics implementation that records counts for tests.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	BookingsCreatedCount int
	SlotConflictsCount   int
	RosterJoinsCount     int
	JoinRejectionsCount  int
	CancellationsCount   int
	NotifSentCount       int
	NotifFailedCount     int
	RequestDurations     []float64
	StartupTime          float64
}

// NewMock creates a new mock Metrics.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncBookingsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BookingsCreatedCount++
}

func (m *Mock) IncSlotConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlotConflictsCount++
}

func (m *Mock) IncRosterJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterJoinsCount++
}

func (m *Mock) IncJoinRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JoinRejectionsCount++
}

func (m *Mock) IncCancellations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancellationsCount++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSentCount++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailedCount++
}

// NotifSent returns the number of recorded successful notifications.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.NotifSentCount
}

// NotifFailed returns the number of recorded failed notifications.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.NotifFailedCount
}

func (m *Mock) ObserveRequestDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestDurations = append(m.RequestDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
