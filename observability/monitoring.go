// Package observability aggregates in-process counters and self metrics
// for the /status command and operator logs.
package observability

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Provider health as seen from the most recent call outcome. No probe
// traffic is generated for status checks.
const (
	ProviderUnknown  = "unknown"
	ProviderOK       = "ok"
	ProviderDegraded = "degraded"
)

// Stats is a point-in-time snapshot for /status.
type Stats struct {
	Uptime           time.Duration
	Handled          uint64
	Suppressed       uint64
	PermissionDenied uint64
	RateLimited      uint64
	ProviderFailures uint64
	Completions      uint64
	ProviderState    string
	CPUPercent       float64
	RAMBytes         uint64
}

// Manager owns the counters. Increments are atomic, the provider state
// transition is guarded by a mutex.
type Manager struct {
	log       *slog.Logger
	startedAt time.Time
	proc      *process.Process

	handled          uint64
	suppressed       uint64
	permissionDenied uint64
	rateLimited      uint64
	providerFailures uint64
	completions      uint64

	mu            sync.RWMutex
	providerState string
}

func NewManager(log *slog.Logger) *Manager {
	// Self-inspection may fail on exotic platforms; stats then omit
	// CPU/RAM rather than failing startup.
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("self process stats unavailable", "err", err)
		proc = nil
	}
	return &Manager{
		log:           log,
		startedAt:     time.Now(),
		proc:          proc,
		providerState: ProviderUnknown,
	}
}

func (m *Manager) IncrHandled()          { atomic.AddUint64(&m.handled, 1) }
func (m *Manager) IncrSuppressed()       { atomic.AddUint64(&m.suppressed, 1) }
func (m *Manager) IncrPermissionDenied() { atomic.AddUint64(&m.permissionDenied, 1) }
func (m *Manager) IncrRateLimited()      { atomic.AddUint64(&m.rateLimited, 1) }
func (m *Manager) IncrCompletions()      { atomic.AddUint64(&m.completions, 1) }

func (m *Manager) ReportProviderSuccess() {
	m.setProviderState(ProviderOK)
}

func (m *Manager) ReportProviderFailure() {
	atomic.AddUint64(&m.providerFailures, 1)
	m.setProviderState(ProviderDegraded)
}

func (m *Manager) setProviderState(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.providerState != state {
		m.log.Info("provider health changed", "from", m.providerState, "to", state)
		m.providerState = state
	}
}

// Snapshot assembles the current stats, including best-effort self
// CPU/RAM readings.
func (m *Manager) Snapshot() Stats {
	m.mu.RLock()
	state := m.providerState
	m.mu.RUnlock()

	stats := Stats{
		Uptime:           time.Since(m.startedAt),
		Handled:          atomic.LoadUint64(&m.handled),
		Suppressed:       atomic.LoadUint64(&m.suppressed),
		PermissionDenied: atomic.LoadUint64(&m.permissionDenied),
		RateLimited:      atomic.LoadUint64(&m.rateLimited),
		ProviderFailures: atomic.LoadUint64(&m.providerFailures),
		Completions:      atomic.LoadUint64(&m.completions),
		ProviderState:    state,
	}

	if m.proc != nil {
		if cpu, err := m.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		}
		if mem, err := m.proc.MemoryInfo(); err == nil {
			stats.RAMBytes = mem.RSS
		}
	}
	return stats
}
