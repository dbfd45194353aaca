package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func Initialize(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS wardrobe_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			image_filename TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			subcategory TEXT NOT NULL DEFAULT '',
			colors TEXT NOT NULL DEFAULT '[]',
			pattern TEXT NOT NULL DEFAULT 'solid',
			material TEXT NOT NULL DEFAULT '',
			formality INTEGER NOT NULL DEFAULT 3,
			seasons TEXT NOT NULL DEFAULT '["spring","summer","fall","winter"]',
			notes TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS outfits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL DEFAULT '',
			occasion TEXT NOT NULL,
			weather_summary TEXT NOT NULL DEFAULT '',
			item_ids TEXT NOT NULL DEFAULT '[]',
			reasoning TEXT NOT NULL DEFAULT '',
			rating INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS wear_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id INTEGER NOT NULL REFERENCES wardrobe_items(id),
			outfit_id INTEGER REFERENCES outfits(id),
			date_worn TEXT NOT NULL DEFAULT (date('now')),
			UNIQUE(item_id, date_worn)
		)`,
		`CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			outfit_a_ids TEXT NOT NULL,
			outfit_b_ids TEXT NOT NULL,
			outfit_a_name TEXT NOT NULL,
			outfit_b_name TEXT NOT NULL,
			winner TEXT NOT NULL,
			occasion TEXT NOT NULL,
			weather_summary TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wear_log_item_id ON wear_log(item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wear_log_date_worn ON wear_log(date_worn)`,
		`CREATE INDEX IF NOT EXISTS idx_wardrobe_items_category ON wardrobe_items(category)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	if err := seedDefaultSettings(db); err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}

	return nil
}

var defaultSettings = map[string]string{
	"location_lat":   "39.89",
	"location_lon":   "-86.16",
	"location_name":  "Indianapolis, IN",
	"no_repeat_days": "7",
	"style_vibe":     "smart casual",
}

func seedDefaultSettings(db *sql.DB) error {
	for key, value := range defaultSettings {
		_, err := db.Exec(
			"INSERT OR IGNORE INTO user_settings (key, value) VALUES (?, ?)",
			key, value,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ClearAllData wipes every table and reseeds the default settings. This is
// the only path that removes battle records.
func ClearAllData(db *sql.DB) error {
	tables := []string{"wear_log", "outfits", "battles", "wardrobe_items", "user_settings"}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := seedDefaultSettings(db); err != nil {
		return fmt.Errorf("failed to reseed settings: %w", err)
	}

	return nil
}
