package database

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			price REAL,
			price_raw TEXT,
			location TEXT,
			type TEXT,
			bedrooms INTEGER DEFAULT 0,
			bathrooms INTEGER DEFAULT 0,
			area REAL DEFAULT 0,
			status TEXT,
			condition TEXT,
			amenities TEXT,
			features TEXT,
			security TEXT,
			images TEXT,
			created_at TEXT,
			views INTEGER DEFAULT 0,
			latitude REAL,
			longitude REAL
		);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_location
		ON properties(location);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_status
		ON properties(status);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_coordinates
		ON properties(latitude, longitude);
	`)
	if err != nil {
		return err
	}

	return nil
}
