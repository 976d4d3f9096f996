package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Captures table - one row per saved makeover photo
		`CREATE TABLE IF NOT EXISTS captures (
			id TEXT PRIMARY KEY,
			file_path TEXT NOT NULL,
			background_id TEXT NOT NULL,
			clothing_category TEXT NOT NULL DEFAULT '',
			clothing_item INTEGER NOT NULL DEFAULT -1,
			accessory_type TEXT NOT NULL DEFAULT '',
			accessory_item INTEGER NOT NULL DEFAULT -1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_captures_created_at ON captures(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
