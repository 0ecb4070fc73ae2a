package health

import (
	"context"
	"sync"
	"time"

	"github.com/ShubhamSPawade/unbound/internal/log"
)

// DefaultTimeout bounds a single check.
const DefaultTimeout = 5 * time.Second

// Manager runs registered checks in parallel and aggregates their results.
type Manager struct {
	mu       sync.RWMutex
	checkers []Checker
	timeout  time.Duration
	logger   *log.Logger
}

// NewManager creates a manager with DefaultTimeout per check.
func NewManager() *Manager {
	return &Manager{
		timeout: DefaultTimeout,
		logger:  log.OrDefault(nil).Component("health"),
	}
}

// WithTimeout sets the per-check timeout.
func (m *Manager) WithTimeout(timeout time.Duration) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return m
}

// WithLogger sets the logger that records each result.
func (m *Manager) WithLogger(logger *log.Logger) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = log.OrDefault(logger).Component("health")
	return m
}

// AddChecker registers a checker. Reports list checks in this order.
func (m *Manager) AddChecker(checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, checker)
}

// RemoveChecker removes a checker by name and reports whether one was removed.
func (m *Manager) RemoveChecker(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, checker := range m.checkers {
		if checker.Name() == name {
			m.checkers = append(m.checkers[:i], m.checkers[i+1:]...)
			return true
		}
	}
	return false
}

// Check runs every check in parallel and returns results by name.
func (m *Manager) Check(ctx context.Context) map[string]*Result {
	entries := m.run(ctx)
	results := make(map[string]*Result, len(entries))
	for _, e := range entries {
		results[e.Name] = e.Result
	}
	return results
}

// Entry is one named result in a Report.
type Entry struct {
	Name   string  `json:"name" yaml:"name"`
	Result *Result `json:"result" yaml:"result"`
}

// Report is the outcome of a full run.
type Report struct {
	Status    Status    `json:"status" yaml:"status"`
	Checks    []Entry   `json:"checks" yaml:"checks"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Run executes every check and returns them in registration order with the
// overall status.
func (m *Manager) Run(ctx context.Context) *Report {
	entries := m.run(ctx)
	results := make(map[string]*Result, len(entries))
	for _, e := range entries {
		results[e.Name] = e.Result
	}
	return &Report{
		Status:    m.OverallStatus(results),
		Checks:    entries,
		Timestamp: time.Now(),
	}
}

func (m *Manager) run(ctx context.Context) []Entry {
	m.mu.RLock()
	checkers := make([]Checker, len(m.checkers))
	copy(checkers, m.checkers)
	timeout := m.timeout
	logger := m.logger
	m.mu.RUnlock()

	entries := make([]Entry, len(checkers))
	var wg sync.WaitGroup

	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			result := c.Check(checkCtx)
			if result == nil {
				result = Unhealthy("check returned no result")
			}
			if result.Latency == 0 {
				result.Latency = time.Since(start)
			}

			logger.Debug("check finished", "check", c.Name(), "status", result.Status, "latency", result.Latency)
			entries[i] = Entry{Name: c.Name(), Result: result}
		}(i, checker)
	}

	wg.Wait()
	return entries
}

// OverallStatus folds results into one status: any unhealthy check makes
// the whole unhealthy, otherwise any degraded check makes it degraded.
func (m *Manager) OverallStatus(results map[string]*Result) Status {
	hasDegraded := false
	for _, result := range results {
		switch result.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// CheckNames returns the names of all registered checkers.
func (m *Manager) CheckNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.checkers))
	for i, checker := range m.checkers {
		names[i] = checker.Name()
	}
	return names
}

// Count returns the number of registered checkers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.checkers)
}
