package models

import "github.com/thenoetrevino/phaseboard/internal/types"

// Column is one phase of the testing pipeline (e.g. "Script Testing").
// Phase numbers are 1-based and strictly increasing across the pipeline.
type Column struct {
	ID    types.ColumnID `json:"id" yaml:"id"`
	Title string         `json:"title" yaml:"title"`
	Phase int            `json:"phase" yaml:"phase"`
	Cards []*Card        `json:"cards" yaml:"-"`
}

// Clone returns a deep copy of the column and its cards
func (c *Column) Clone() *Column {
	if c == nil {
		return nil
	}
	out := &Column{
		ID:    c.ID,
		Title: c.Title,
		Phase: c.Phase,
		Cards: make([]*Card, len(c.Cards)),
	}
	for i, card := range c.Cards {
		out.Cards[i] = card.Clone()
	}
	return out
}

// IndexOf returns the position of a card in the column, or -1
func (c *Column) IndexOf(id types.CardID) int {
	for i, card := range c.Cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}
