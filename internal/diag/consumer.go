package diag

import "mica/internal/source"

// Consumer receives diagnostics dispatched by a Manager. Implementations
// must serialize their own output if the same consumer is shared across
// goroutines; the manager does not hold its lock while calling Handle.
type Consumer interface {
	// BeginSourceFile is called before a batch of diagnostics.
	BeginSourceFile()
	// Handle processes one diagnostic. info carries the effective level
	// (warnings may have been promoted to errors). sm may be nil when no
	// SourceManager is bound.
	Handle(d *Diagnostic, info Info, sm *source.SourceManager)
	// EndSourceFile is called after a batch of diagnostics.
	EndSourceFile()
	// Finish is called once when diagnostics are complete.
	Finish()
}

// CollectConsumer buffers every handled diagnostic. Useful in tests and
// for phases that post-process findings.
type CollectConsumer struct {
	Diags  []*Diagnostic
	Levels []Level
}

// BeginSourceFile implements Consumer.
func (c *CollectConsumer) BeginSourceFile() {}

// Handle implements Consumer.
func (c *CollectConsumer) Handle(d *Diagnostic, info Info, _ *source.SourceManager) {
	c.Diags = append(c.Diags, d)
	c.Levels = append(c.Levels, info.Level)
}

// EndSourceFile implements Consumer.
func (c *CollectConsumer) EndSourceFile() {}

// Finish implements Consumer.
func (c *CollectConsumer) Finish() {}
