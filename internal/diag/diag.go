// Package diag collects validation diagnostics into ordered, phase-scoped
// batches and renders the final report.
package diag

import (
	"fmt"
	"io"
	"time"
)

// Severity of a diagnostic. Errors fail the run, warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category names the check family a diagnostic came from.
type Category string

const (
	CategoryStructure    Category = "structure"
	CategoryParse        Category = "parse"
	CategoryIdentity     Category = "identity"
	CategoryPlacement    Category = "placement"
	CategoryReference    Category = "reference"
	CategoryRelationship Category = "relationship"
	CategoryLegality     Category = "legality"
	CategoryDiagram      Category = "diagram"
	CategoryArchi        Category = "archi"
)

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// Batch is an ordered accumulation of diagnostics. Each validation phase
// returns its own Batch; the orchestrator merges them in a fixed phase
// order. Entries are never deduplicated.
type Batch struct {
	items []Diagnostic
}

// Errorf appends an error-severity diagnostic.
func (b *Batch) Errorf(cat Category, format string, args ...any) {
	b.items = append(b.items, Diagnostic{
		Severity: SeverityError,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf appends a warning-severity diagnostic.
func (b *Batch) Warnf(cat Category, format string, args ...any) {
	b.items = append(b.items, Diagnostic{
		Severity: SeverityWarning,
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends every diagnostic from the given batches, in order.
func (b *Batch) Merge(others ...Batch) {
	for _, o := range others {
		b.items = append(b.items, o.items...)
	}
}

// Items returns the diagnostics in insertion order.
func (b *Batch) Items() []Diagnostic {
	return b.items
}

// Errors returns the error-severity diagnostics in insertion order.
func (b *Batch) Errors() []Diagnostic {
	return b.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics in insertion order.
func (b *Batch) Warnings() []Diagnostic {
	return b.filter(SeverityWarning)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Batch) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (b *Batch) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range b.items {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Summary is the serializable outcome of one validation run.
type Summary struct {
	Passed    bool         `json:"passed"`
	Errors    []Diagnostic `json:"errors"`
	Warnings  []Diagnostic `json:"warnings"`
	CheckedAt time.Time    `json:"checked_at"`
}

// Summarize freezes a merged batch into a Summary.
func Summarize(b Batch) Summary {
	errs := b.Errors()
	return Summary{
		Passed:    len(errs) == 0,
		Errors:    errs,
		Warnings:  b.Warnings(),
		CheckedAt: time.Now().UTC(),
	}
}

// Report writes warnings then errors to errOut with severity prefixes,
// followed by a single outcome line. The success line goes to out so that
// scripted callers can keep stdout clean of diagnostics.
func Report(out, errOut io.Writer, s Summary) {
	for _, w := range s.Warnings {
		fmt.Fprintf(errOut, "WARN: %s\n", w.Message)
	}
	if !s.Passed {
		for _, e := range s.Errors {
			fmt.Fprintf(errOut, "FAIL: %s\n", e.Message)
		}
		fmt.Fprintf(errOut, "Validation completed with %d error(s).\n", len(s.Errors))
		return
	}
	fmt.Fprintln(out, "Validation passed.")
}
