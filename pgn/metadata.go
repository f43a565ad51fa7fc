// Package pgn reads and writes games in Portable Game Notation and converts
// between moves and Standard Algebraic Notation.
package pgn

import (
	"chess-core/board"
)

// Tag is one PGN tag pair.
type Tag struct {
	Name  string
	Value string
}

// Metadata is an ordered list of tag pairs. Iteration follows insertion
// order; setting an existing name replaces its value in place.
type Metadata struct {
	tags []Tag
}

// Set stores value under name.
func (m *Metadata) Set(name, value string) {
	for i := range m.tags {
		if m.tags[i].Name == name {
			m.tags[i].Value = value
			return
		}
	}
	m.tags = append(m.tags, Tag{Name: name, Value: value})
}

// Get returns the value stored under name.
func (m *Metadata) Get(name string) (string, bool) {
	for _, t := range m.tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Delete removes name if present.
func (m *Metadata) Delete(name string) {
	for i, t := range m.tags {
		if t.Name == name {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			return
		}
	}
}

// Tags returns a copy of the tag pairs in order.
func (m *Metadata) Tags() []Tag { return append([]Tag(nil), m.tags...) }

func (m *Metadata) Len() int { return len(m.tags) }

// InitialPosition returns the position named by the FEN tag, or the standard
// start position when there is none.
func (m *Metadata) InitialPosition() (*board.Position, error) {
	if fen, ok := m.Get("FEN"); ok {
		return board.ParseFEN(fen)
	}
	return board.NewPosition(), nil
}
