package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// GestureKind names an evaluator the binding uses.
type GestureKind string

const (
	GesturePinch    GestureKind = "pinch"
	GestureArea     GestureKind = "area"
	GestureFist     GestureKind = "fist"
	GestureThumbsUp GestureKind = "thumbs_up"
	GestureVictory  GestureKind = "victory"
)

// Continuous reports whether the gesture produces a scalar value rather
// than a trigger event.
func (g GestureKind) Continuous() bool {
	return g == GesturePinch || g == GestureArea
}

// OutputKind names the sink side of a binding.
type OutputKind string

const (
	OutputMIDICC       OutputKind = "midi_cc"
	OutputSystemVolume OutputKind = "system_volume"
	OutputMIDIStop     OutputKind = "midi_stop"
	OutputSystemMute   OutputKind = "system_mute"
	OutputPlayPause    OutputKind = "play_pause"
)

// Binding represents a persisted gesture-to-output binding.
type Binding struct {
	ID         string
	Gesture    GestureKind
	Output     OutputKind
	Channel    int // MIDI channel 0-15
	Controller int // MIDI CC number for midi_cc outputs
	Gated      bool
	Active     bool
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BindingRepository provides CRUD operations for bindings.
type BindingRepository struct {
	db *sql.DB
}

// Bindings returns the binding repository for this store.
func (s *Store) Bindings() *BindingRepository {
	return &BindingRepository{db: s.db}
}

// Create inserts a new binding.
func (r *BindingRepository) Create(b *Binding) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO bindings (id, gesture, output, channel, controller, gated, active, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, string(b.Gesture), string(b.Output), b.Channel, b.Controller,
		boolToInt(b.Gated), boolToInt(b.Active), b.Position, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetByID retrieves a binding by its ID.
func (r *BindingRepository) GetByID(id string) (*Binding, error) {
	row := r.db.QueryRow(
		`SELECT id, gesture, output, channel, controller, gated, active, position, created_at, updated_at
		 FROM bindings WHERE id = ?`,
		id,
	)
	return scanBinding(row)
}

// List retrieves all bindings in display order.
func (r *BindingRepository) List() ([]*Binding, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, output, channel, controller, gated, active, position, created_at, updated_at
		 FROM bindings ORDER BY position, created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []*Binding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	return bindings, rows.Err()
}

// Update modifies an existing binding.
// Returns ErrNotFound if the binding does not exist.
func (r *BindingRepository) Update(b *Binding) error {
	b.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE bindings
		 SET gesture = ?, output = ?, channel = ?, controller = ?, gated = ?, active = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		string(b.Gesture), string(b.Output), b.Channel, b.Controller,
		boolToInt(b.Gated), boolToInt(b.Active), b.Position, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a binding by ID.
// Returns ErrNotFound if the binding does not exist.
func (r *BindingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bindings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBinding(s scanner) (*Binding, error) {
	b := &Binding{}
	var gesture, output string
	var gated, active int

	err := s.Scan(&b.ID, &gesture, &output, &b.Channel, &b.Controller,
		&gated, &active, &b.Position, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Gesture = GestureKind(gesture)
	b.Output = OutputKind(output)
	b.Gated = gated != 0
	b.Active = active != 0
	return b, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
