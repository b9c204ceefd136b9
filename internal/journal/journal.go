// Package journal holds the working set of an open journal: one editable
// buffer per day. The buffer implementation is supplied by the caller, so the
// model itself knows nothing about terminals or key handling.
package journal

import (
	"strings"

	"github.com/chris-regnier/jrnlctl/internal/datekey"
	"github.com/chris-regnier/jrnlctl/internal/vault"
)

// Buffer is an editable text. Lines returns the content split on newlines and
// LoadFrom replaces it.
type Buffer interface {
	Lines() []string
	LoadFrom(lines []string)
}

// Model maps days to buffers. It is not safe for concurrent use.
type Model[B Buffer] struct {
	entries map[datekey.DateKey]B
	factory func() B
}

// New returns an empty model whose buffers are created by factory.
func New[B Buffer](factory func() B) *Model[B] {
	return &Model[B]{
		entries: make(map[datekey.DateKey]B),
		factory: factory,
	}
}

// FromDocument builds a model with one buffer per document entry.
func FromDocument[B Buffer](doc vault.Document, factory func() B) *Model[B] {
	m := New(factory)
	for date, text := range doc.Entries {
		b := factory()
		b.LoadFrom(SplitLines(text))
		m.entries[date] = b
	}
	return m
}

// GetOrCreate returns the buffer for date, creating an empty one first if the
// day has no entry yet.
func (m *Model[B]) GetOrCreate(date datekey.DateKey) B {
	if b, ok := m.entries[date]; ok {
		return b
	}
	b := m.factory()
	m.entries[date] = b
	return b
}

// Get returns the buffer for date, if any.
func (m *Model[B]) Get(date datekey.DateKey) (B, bool) {
	b, ok := m.entries[date]
	return b, ok
}

// Has reports whether date has an entry.
func (m *Model[B]) Has(date datekey.DateKey) bool {
	_, ok := m.entries[date]
	return ok
}

// Remove deletes the entry for date. It reports whether an entry existed.
func (m *Model[B]) Remove(date datekey.DateKey) bool {
	if _, ok := m.entries[date]; !ok {
		return false
	}
	delete(m.entries, date)
	return true
}

// Len returns the number of entries.
func (m *Model[B]) Len() int { return len(m.entries) }

// Dates returns every day with an entry in chronological order.
func (m *Model[B]) Dates() []datekey.DateKey {
	dates := make([]datekey.DateKey, 0, len(m.entries))
	for d := range m.entries {
		dates = append(dates, d)
	}
	datekey.Sort(dates)
	return dates
}

// Text returns the content of the entry for date joined with newlines.
func (m *Model[B]) Text(date datekey.DateKey) string {
	b, ok := m.entries[date]
	if !ok {
		return ""
	}
	return JoinLines(b.Lines())
}

// Document snapshots every entry into a document suitable for saving. The
// snapshot shares nothing with the model.
func (m *Model[B]) Document() vault.Document {
	doc := vault.NewDocument()
	for date, b := range m.entries {
		doc.Entries[date] = JoinLines(b.Lines())
	}
	return doc
}

// SplitLines splits text on "\n". The empty text is a single empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Lines is a plain in-memory Buffer.
type Lines struct {
	lines []string
}

// NewLines returns an empty Lines buffer.
func NewLines() *Lines { return &Lines{lines: []string{""}} }

// Lines implements Buffer.
func (l *Lines) Lines() []string { return append([]string(nil), l.lines...) }

// LoadFrom implements Buffer.
func (l *Lines) LoadFrom(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	l.lines = append([]string(nil), lines...)
}
