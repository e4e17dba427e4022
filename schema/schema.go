// Package schema is the single source of truth for the gateway fields the
// client knows about: which request types each field applies to, which
// types require it, how it validates, and how it displays as a transaction
// table column.
package schema

import (
	"sort"

	"golang.org/x/exp/slog"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
)

// PositionNone marks a field that is not an active table column.
const PositionNone = -1

// FieldDef describes a single gateway field.
type FieldDef struct {
	// Validator names an entry in the validator registry. Empty means the
	// field accepts any value.
	Validator string
	// Include is the set of request types this field may appear in.
	Include requesttype.Mask
	// Require is the set of request types for which this field is mandatory.
	Require requesttype.Mask
	// Label is the human-readable name used for form labels and column headers.
	Label string
	// Active reports whether the field is currently a transaction table column.
	Active bool
	// Position is the zero-based column order when Active, PositionNone otherwise.
	Position int
}

// Schema is an ordered mapping of field name to definition. Insertion order
// is preserved and drives the default column ordering fallback.
type Schema struct {
	// Strict flips validation of unknown fields from pass to fail.
	Strict bool

	order  []string
	fields map[string]*FieldDef
	logger *slog.Logger
}

// New returns an empty schema.
func New(logger *slog.Logger) *Schema {
	if logger == nil {
		logger = slog.Default()
	}
	return &Schema{
		fields: make(map[string]*FieldDef),
		logger: logger.With(slog.String("component", "schema")),
	}
}

// Put adds or replaces a field definition. A new field is appended to the
// insertion order; replacing keeps the original slot.
func (s *Schema) Put(name string, def FieldDef) {
	if _, ok := s.fields[name]; !ok {
		s.order = append(s.order, name)
	}
	copied := def
	s.fields[name] = &copied
}

// Get returns the definition for name.
func (s *Schema) Get(name string) (FieldDef, bool) {
	def, ok := s.fields[name]
	if !ok {
		return FieldDef{}, false
	}
	return *def, true
}

// Names lists every field name in insertion order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.order)
}

// Clone returns an independent deep copy. Mutating the clone never affects
// the receiver.
func (s *Schema) Clone() *Schema {
	clone := New(s.logger)
	clone.Strict = s.Strict
	for _, name := range s.order {
		clone.Put(name, *s.fields[name])
	}
	return clone
}

// replaceFrom overwrites the receiver's field table with other's, in place,
// so every holder of the receiver observes the new state.
func (s *Schema) replaceFrom(other *Schema) {
	s.order = make([]string, 0, len(other.order))
	s.fields = make(map[string]*FieldDef, len(other.fields))
	s.Strict = other.Strict
	for _, name := range other.order {
		s.Put(name, *other.fields[name])
	}
}

// FieldsFor returns every field relevant to the given request type, in
// insertion order.
func (s *Schema) FieldsFor(rt requesttype.RequestType) []string {
	var out []string
	for _, name := range s.order {
		if s.fields[name].Include.Has(rt) {
			out = append(out, name)
		}
	}
	return out
}

// RequiredFieldsFor returns every field the given request type cannot be
// submitted without, in insertion order.
func (s *Schema) RequiredFieldsFor(rt requesttype.RequestType) []string {
	var out []string
	for _, name := range s.order {
		if s.fields[name].Require.Has(rt) {
			out = append(out, name)
		}
	}
	return out
}

// ActiveColumns returns the active table columns ordered by position.
func (s *Schema) ActiveColumns() []string {
	var out []string
	for _, name := range s.order {
		if s.fields[name].Active {
			out = append(out, name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.fields[out[i]].Position < s.fields[out[j]].Position
	})
	return out
}

// Label returns the display label for a field, falling back to the field
// name itself when the field is unknown.
func (s *Schema) Label(name string) string {
	if def, ok := s.fields[name]; ok {
		return def.Label
	}
	s.logger.Warn("label lookup for unknown field", slog.String("field", name))
	return name
}

// Validate runs the field's validator against value. Fields without a
// validator always pass. Unknown fields pass unless the schema is Strict;
// nothing here ever panics on any input string.
func (s *Schema) Validate(name, value string) bool {
	def, ok := s.fields[name]
	if !ok {
		s.logger.Warn("validating unknown field", slog.String("field", name))
		return !s.Strict
	}
	if def.Validator == "" {
		return true
	}
	fn, ok := Validator(def.Validator)
	if !ok {
		s.logger.Warn("field references unregistered validator",
			slog.String("field", name), slog.String("validator", def.Validator))
		return !s.Strict
	}
	return fn(value)
}

// MissingRequired returns the required fields for rt that are absent or
// empty in values, in insertion order.
func (s *Schema) MissingRequired(rt requesttype.RequestType, values map[string]string) []string {
	var missing []string
	for _, name := range s.RequiredFieldsFor(rt) {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// normalizePositions rebuilds the active position sequence as a contiguous
// 0..k-1 run, keeping the relative order of the current positions and
// breaking ties by insertion order. Inactive fields get PositionNone. This
// doubles as the self-repair path for a corrupted ordering.
func (s *Schema) normalizePositions() {
	var active []string
	for _, name := range s.order {
		def := s.fields[name]
		if def.Active {
			active = append(active, name)
		} else {
			def.Position = PositionNone
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return s.fields[active[i]].Position < s.fields[active[j]].Position
	})
	for i, name := range active {
		s.fields[name].Position = i
	}
}

// activeCount returns the number of active columns.
func (s *Schema) activeCount() int {
	n := 0
	for _, def := range s.fields {
		if def.Active {
			n++
		}
	}
	return n
}
