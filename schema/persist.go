package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
)

// Store reads and writes the schema snapshot file. The snapshot is a JSON
// array of field records so field order survives the round trip; masks are
// stored as their bit values and validators by registry name, re-attached
// at load.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a store persisting to path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "schema-store"), slog.String("path", path)),
	}
}

// Path returns the snapshot file location.
func (st *Store) Path() string {
	return st.path
}

type fieldRecord struct {
	Name      string `json:"name"`
	Validator string `json:"validator,omitempty"`
	Include   uint8  `json:"include"`
	Require   uint8  `json:"require"`
	Label     string `json:"label"`
	Active    bool   `json:"active"`
	Position  int    `json:"position"`
}

type snapshot struct {
	Fields []fieldRecord `json:"fields"`
}

// Save serializes the schema to the snapshot file.
func (st *Store) Save(s *Schema) error {
	snap := snapshot{Fields: make([]fieldRecord, 0, s.Len())}
	for _, name := range s.Names() {
		def, _ := s.Get(name)
		snap.Fields = append(snap.Fields, fieldRecord{
			Name:      name,
			Validator: def.Validator,
			Include:   uint8(def.Include),
			Require:   uint8(def.Require),
			Label:     def.Label,
			Active:    def.Active,
			Position:  def.Position,
		})
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema snapshot: %w", err)
	}
	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("writing schema snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot file back into a schema. Returns fs.ErrNotExist
// (wrapped) when no snapshot has been saved.
func (st *Store) Load() (*Schema, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return nil, fmt.Errorf("reading schema snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding schema snapshot: %w", err)
	}
	s := New(st.logger)
	for _, rec := range snap.Fields {
		if rec.Validator != "" && !KnownValidator(rec.Validator) {
			st.logger.Warn("snapshot references unregistered validator",
				slog.String("field", rec.Name), slog.String("validator", rec.Validator))
		}
		s.Put(rec.Name, FieldDef{
			Validator: rec.Validator,
			Include:   requesttype.Mask(rec.Include),
			Require:   requesttype.Mask(rec.Require),
			Label:     rec.Label,
			Active:    rec.Active,
			Position:  rec.Position,
		})
	}
	s.normalizePositions()
	return s, nil
}

// LoadOrDefault starts from the persisted snapshot when one exists and is
// readable, otherwise from the hardcoded defaults. Persistence problems are
// logged, never fatal.
func (st *Store) LoadOrDefault() *Schema {
	s, err := st.Load()
	if err == nil {
		return s
	}
	if !errors.Is(err, fs.ErrNotExist) {
		st.logger.Warn("falling back to default schema", slog.Any("err", err))
	}
	return Default(st.logger)
}

// Delete removes the snapshot file. Missing files are not an error.
func (st *Store) Delete() error {
	err := os.Remove(st.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting schema snapshot: %w", err)
	}
	return nil
}
