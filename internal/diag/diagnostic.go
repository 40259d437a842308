package diag

import "mica/internal/source"

// FixIt is a machine-applicable suggested edit: replace the bytes covered
// by Range with Replacement. Applying it is the driver's business; the
// front-end only records the data.
type FixIt struct {
	Range       source.Range
	Replacement string
}

// Diagnostic is a single reported finding. Args bind to the %0, %1, ...
// placeholders of the id's detail template, in order. Ranges highlight
// spans beyond the primary location.
type Diagnostic struct {
	ID     ID
	Loc    source.Location
	Args   []string
	Ranges []source.Range
	FixIts []FixIt
}

// New builds a diagnostic at loc.
func New(id ID, loc source.Location) *Diagnostic {
	return &Diagnostic{ID: id, Loc: loc}
}

// WithArg appends a message argument.
func (d *Diagnostic) WithArg(arg string) *Diagnostic {
	d.Args = append(d.Args, arg)
	return d
}

// WithRange appends a highlight range.
func (d *Diagnostic) WithRange(r source.Range) *Diagnostic {
	d.Ranges = append(d.Ranges, r)
	return d
}

// WithFixIt appends a fix-it hint.
func (d *Diagnostic) WithFixIt(r source.Range, replacement string) *Diagnostic {
	d.FixIts = append(d.FixIts, FixIt{Range: r, Replacement: replacement})
	return d
}
