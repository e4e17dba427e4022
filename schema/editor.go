package schema

import (
	"golang.org/x/exp/slog"
)

// Direction selects which way Move shifts a column.
type Direction int

const (
	Up Direction = iota
	Down
)

// Editor drives the column-settings workflow: it owns a working copy of the
// live schema, applies toggles and moves to it, and only touches the live
// schema (and disk) on an explicit Apply/Save. Dropping the editor without
// Apply leaves the live schema untouched.
type Editor struct {
	live    *Schema
	working *Schema
	store   *Store
	logger  *slog.Logger
}

// NewEditor opens an edit session over live. The store may be nil when
// persistence is not wanted (tests).
func NewEditor(live *Schema, store *Store, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		live:    live,
		working: live.Clone(),
		store:   store,
		logger:  logger.With(slog.String("component", "schema-editor")),
	}
}

// Working exposes the editable copy, for rendering the settings view.
func (e *Editor) Working() *Schema {
	return e.working
}

// Toggle activates or deactivates a column on the working copy. Activating
// appends the column to the end of the active ordering; deactivating drops
// it out entirely. Unknown fields are logged and ignored.
func (e *Editor) Toggle(name string, active bool) {
	def, ok := e.working.fields[name]
	if !ok {
		e.logger.Warn("toggle on unknown field", slog.String("field", name))
		return
	}
	if def.Active == active {
		return
	}
	def.Active = active
	if active {
		def.Position = e.working.activeCount() - 1
	} else {
		def.Position = PositionNone
		e.working.normalizePositions()
	}
}

// Move shifts an active column one slot up or down by swapping positions
// with its neighbour. Moving past either end is a silent no-op. Unknown or
// inactive fields are logged and ignored.
func (e *Editor) Move(name string, dir Direction) {
	def, ok := e.working.fields[name]
	if !ok {
		e.logger.Warn("move on unknown field", slog.String("field", name))
		return
	}
	if !def.Active {
		e.logger.Warn("move on inactive field", slog.String("field", name))
		return
	}
	target := def.Position + 1
	if dir == Up {
		target = def.Position - 1
	}
	if target < 0 || target >= e.working.activeCount() {
		return
	}
	for _, other := range e.working.fields {
		if other != def && other.Active && other.Position == target {
			other.Position = def.Position
			def.Position = target
			return
		}
	}
	// No occupant at the target slot means the ordering was corrupted
	// upstream; repair it and drop the move.
	e.logger.Warn("active positions were not contiguous, repairing",
		slog.String("field", name), slog.Int("target", target))
	e.working.normalizePositions()
}

// Apply commits the working copy into the live schema. Every holder of the
// live schema sees the new column set immediately.
func (e *Editor) Apply() {
	e.live.replaceFrom(e.working)
}

// Discard throws away all pending edits, re-cloning the live schema.
func (e *Editor) Discard() {
	e.working = e.live.Clone()
}

// Save persists the live schema so it is reloaded on next startup. Call
// Apply first to commit pending edits.
func (e *Editor) Save() error {
	if e.store == nil {
		return nil
	}
	return e.store.Save(e.live)
}

// Reset replaces both the live schema and the working copy with the
// defaults and deletes any persisted snapshot.
func (e *Editor) Reset() error {
	e.live.replaceFrom(Default(e.logger))
	e.working = e.live.Clone()
	if e.store == nil {
		return nil
	}
	return e.store.Delete()
}
