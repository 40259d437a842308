package diag

import (
	"sync"

	"mica/internal/source"
)

// Stats holds the monotone diagnostic counters. Counts never decrease
// except across Reset.
type Stats struct {
	NoteCount    uint64
	WarningCount uint64
	ErrorCount   uint64
	FatalCount   uint64
	TotalCount   uint64
}

// HasErrors reports whether any error or fatal was counted.
func (s Stats) HasErrors() bool { return s.ErrorCount > 0 || s.FatalCount > 0 }

// HasWarnings reports whether any warning was counted.
func (s Stats) HasWarnings() bool { return s.WarningCount > 0 }

// Manager is the central diagnostic sink: it resolves ids against the
// static table, applies filters, counts by level, and fans out to
// consumers in registration order. Errors and fatals are never suppressed.
type Manager struct {
	mu        sync.Mutex
	consumers []Consumer
	sm        *source.SourceManager

	suppressWarnings bool
	suppressNotes    bool
	warningsAsErrors bool
	maxErrors        uint64 // 0 = unlimited

	stats Stats
}

// NewManager creates a manager with no consumers and no filters.
func NewManager() *Manager {
	return &Manager{}
}

// SetSourceManager binds the manager used to resolve locations in output.
func (m *Manager) SetSourceManager(sm *source.SourceManager) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sm = sm
}

// AddConsumer appends a consumer; dispatch follows registration order.
func (m *Manager) AddConsumer(c Consumer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumers = append(m.consumers, c)
}

// ClearConsumers removes every consumer.
func (m *Manager) ClearConsumers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumers = nil
}

// SetSuppressWarnings toggles warning suppression.
func (m *Manager) SetSuppressWarnings(suppress bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppressWarnings = suppress
}

// SetSuppressNotes toggles note suppression.
func (m *Manager) SetSuppressNotes(suppress bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppressNotes = suppress
}

// SetWarningsAsErrors promotes warnings to errors when enabled.
func (m *Manager) SetWarningsAsErrors(enable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warningsAsErrors = enable
}

// SetMaxErrors caps dispatched errors; zero means unlimited. Once the
// error count reaches the cap, diagnostics are still counted but no longer
// dispatched.
func (m *Manager) SetMaxErrors(limit uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxErrors = limit
}

// Report resolves, filters, counts, and dispatches a diagnostic.
func (m *Manager) Report(d *Diagnostic) {
	info := InfoFor(d.ID)

	m.mu.Lock()
	if m.shouldSuppressLocked(info) {
		m.mu.Unlock()
		return
	}

	if m.warningsAsErrors && info.Level == Warning {
		info.Level = Error
	}

	switch info.Level {
	case Note:
		m.stats.NoteCount++
	case Warning:
		m.stats.WarningCount++
	case Error:
		m.stats.ErrorCount++
	case Fatal:
		m.stats.FatalCount++
	}
	m.stats.TotalCount++

	// На лимите и дальше считаем, но не рассылаем.
	capped := m.maxErrors > 0 && m.stats.ErrorCount >= m.maxErrors
	consumers := m.consumers
	sm := m.sm
	m.mu.Unlock()

	if capped {
		return
	}
	for _, c := range consumers {
		c.Handle(d, info, sm)
	}
}

// ReportID is Report for an argument-free diagnostic.
func (m *Manager) ReportID(id ID, loc source.Location) {
	m.Report(New(id, loc))
}

// ReportArgs is Report with message arguments.
func (m *Manager) ReportArgs(id ID, loc source.Location, args ...string) {
	d := New(id, loc)
	for _, a := range args {
		d.WithArg(a)
	}
	m.Report(d)
}

func (m *Manager) shouldSuppressLocked(info Info) bool {
	switch info.Level {
	case Note:
		return m.suppressNotes
	case Warning:
		return m.suppressWarnings
	}
	return false // ошибки и fatal не подавляются
}

// ShouldContinue reports whether compilation should proceed: false after
// any fatal or once the error cap is reached.
func (m *Manager) ShouldContinue() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats.FatalCount > 0 {
		return false
	}
	if m.maxErrors > 0 && m.stats.ErrorCount >= m.maxErrors {
		return false
	}
	return true
}

// HasErrors reports whether any error or fatal was counted.
func (m *Manager) HasErrors() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats.HasErrors()
}

// HasWarnings reports whether any warning was counted.
func (m *Manager) HasWarnings() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats.HasWarnings()
}

// Stats returns a snapshot of the counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Reset zeroes the counters. The only operation allowed to decrease them.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = Stats{}
}

// BeginSourceFile forwards to every consumer.
func (m *Manager) BeginSourceFile() {
	m.mu.Lock()
	consumers := m.consumers
	m.mu.Unlock()
	for _, c := range consumers {
		c.BeginSourceFile()
	}
}

// EndSourceFile forwards to every consumer.
func (m *Manager) EndSourceFile() {
	m.mu.Lock()
	consumers := m.consumers
	m.mu.Unlock()
	for _, c := range consumers {
		c.EndSourceFile()
	}
}

// Finish forwards to every consumer.
func (m *Manager) Finish() {
	m.mu.Lock()
	consumers := m.consumers
	m.mu.Unlock()
	for _, c := range consumers {
		c.Finish()
	}
}

// SuppressScope suppresses warnings and notes until the returned restore
// function runs. Intended for bulk operations:
//
//	defer m.SuppressScope()()
func (m *Manager) SuppressScope() func() {
	m.mu.Lock()
	oldWarnings := m.suppressWarnings
	oldNotes := m.suppressNotes
	m.suppressWarnings = true
	m.suppressNotes = true
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.suppressWarnings = oldWarnings
		m.suppressNotes = oldNotes
		m.mu.Unlock()
	}
}
