package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Bindings table - stores gesture-to-output binding definitions.
		// Calibration ranges live in the .env settings, not here, so a
		// recalibration applies to every binding at once.
		`CREATE TABLE IF NOT EXISTS bindings (
			id TEXT PRIMARY KEY,
			gesture TEXT NOT NULL CHECK(gesture IN ('pinch', 'area', 'fist', 'thumbs_up', 'victory')),
			output TEXT NOT NULL CHECK(output IN ('midi_cc', 'system_volume', 'midi_stop', 'system_mute', 'play_pause')),
			channel INTEGER NOT NULL DEFAULT 0,
			controller INTEGER NOT NULL DEFAULT 7,
			gated INTEGER NOT NULL DEFAULT 1,
			active INTEGER NOT NULL DEFAULT 1,
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_bindings_position ON bindings(position)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
