package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"drip/internal/models"
)

// GarmentFilter narrows ListGarments. Zero values mean "no constraint";
// FormalityMin/Max default to the full 1-5 range.
type GarmentFilter struct {
	ActiveOnly   bool
	Category     string
	Seasons      []string
	FormalityMin int
	FormalityMax int
}

func CreateGarment(db *sql.DB, garment models.Garment) (*models.Garment, error) {
	garment.Normalize()

	colorsJSON, err := json.Marshal(garment.Colors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	seasonsJSON, err := json.Marshal(garment.Seasons)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seasons: %w", err)
	}

	query := `
		INSERT INTO wardrobe_items (image_filename, name, category, subcategory, colors, pattern, material, formality, seasons, notes, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, garment.ImageFilename, garment.Name, garment.Category,
		garment.Subcategory, string(colorsJSON), garment.Pattern, garment.Material,
		garment.Formality, string(seasonsJSON), garment.Notes, garment.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to create garment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get garment ID: %w", err)
	}

	garment.ID = int(id)
	garment.CreatedAt = time.Now()
	garment.UpdatedAt = time.Now()

	return &garment, nil
}

func GetGarment(db *sql.DB, garmentID int) (*models.Garment, error) {
	query := `
		SELECT id, image_filename, name, category, subcategory, colors, pattern,
		       material, formality, seasons, notes, active, created_at, updated_at
		FROM wardrobe_items
		WHERE id = ?
	`

	garment, err := scanGarment(db.QueryRow(query, garmentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("garment not found")
		}
		return nil, fmt.Errorf("failed to query garment: %w", err)
	}

	return garment, nil
}

func ListGarments(db *sql.DB, filter GarmentFilter) ([]models.Garment, error) {
	query := `
		SELECT id, image_filename, name, category, subcategory, colors, pattern,
		       material, formality, seasons, notes, active, created_at, updated_at
		FROM wardrobe_items
		WHERE 1=1
	`
	var params []interface{}

	if filter.ActiveOnly {
		query += " AND active = 1"
	}
	if filter.Category != "" {
		query += " AND category = ?"
		params = append(params, filter.Category)
	}
	if filter.FormalityMin > 1 || (filter.FormalityMax >= 1 && filter.FormalityMax < 5) {
		min, max := filter.FormalityMin, filter.FormalityMax
		if min < 1 {
			min = 1
		}
		if max < 1 {
			max = 5
		}
		query += " AND formality >= ? AND formality <= ?"
		params = append(params, min, max)
	}

	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query garments: %w", err)
	}
	defer rows.Close()

	var garments []models.Garment
	for rows.Next() {
		garment, err := scanGarment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan garment: %w", err)
		}
		garments = append(garments, *garment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating garments: %w", err)
	}

	// Season membership lives in a JSON column, so filter here rather
	// than in SQL.
	if len(filter.Seasons) > 0 {
		filtered := make([]models.Garment, 0, len(garments))
		for _, g := range garments {
			if hasAnySeason(g.Seasons, filter.Seasons) {
				filtered = append(filtered, g)
			}
		}
		garments = filtered
	}

	return garments, nil
}

func hasAnySeason(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func UpdateGarment(db *sql.DB, garmentID int, garment models.Garment) error {
	garment.Normalize()

	colorsJSON, err := json.Marshal(garment.Colors)
	if err != nil {
		return fmt.Errorf("failed to encode colors: %w", err)
	}
	seasonsJSON, err := json.Marshal(garment.Seasons)
	if err != nil {
		return fmt.Errorf("failed to encode seasons: %w", err)
	}

	query := `
		UPDATE wardrobe_items
		SET image_filename = ?, name = ?, category = ?, subcategory = ?, colors = ?,
		    pattern = ?, material = ?, formality = ?, seasons = ?, notes = ?, active = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := db.Exec(query, garment.ImageFilename, garment.Name, garment.Category,
		garment.Subcategory, string(colorsJSON), garment.Pattern, garment.Material,
		garment.Formality, string(seasonsJSON), garment.Notes, garment.Active, garmentID)
	if err != nil {
		return fmt.Errorf("failed to update garment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("garment not found")
	}

	return nil
}

func DeleteGarment(db *sql.DB, garmentID int) error {
	// Wear history goes with the garment. Battle records keep the raw id;
	// readers tolerate ids that no longer resolve.
	if _, err := db.Exec("DELETE FROM wear_log WHERE item_id = ?", garmentID); err != nil {
		return fmt.Errorf("failed to delete wear log entries: %w", err)
	}

	result, err := db.Exec("DELETE FROM wardrobe_items WHERE id = ?", garmentID)
	if err != nil {
		return fmt.Errorf("failed to delete garment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("garment not found")
	}

	return nil
}

func GetGarmentCountByCategory(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(
		"SELECT category, COUNT(*) FROM wardrobe_items WHERE active = 1 GROUP BY category",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func decodeJSONList(encoded string, dest *[]string) {
	if err := json.Unmarshal([]byte(encoded), dest); err != nil {
		*dest = []string{}
	}
}

func scanGarment(row rowScanner) (*models.Garment, error) {
	garment := &models.Garment{}
	var colorsJSON, seasonsJSON string

	err := row.Scan(
		&garment.ID,
		&garment.ImageFilename,
		&garment.Name,
		&garment.Category,
		&garment.Subcategory,
		&colorsJSON,
		&garment.Pattern,
		&garment.Material,
		&garment.Formality,
		&seasonsJSON,
		&garment.Notes,
		&garment.Active,
		&garment.CreatedAt,
		&garment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(colorsJSON), &garment.Colors); err != nil {
		garment.Colors = []string{}
	}
	if err := json.Unmarshal([]byte(seasonsJSON), &garment.Seasons); err != nil {
		garment.Seasons = models.AllSeasons()
	}

	return garment, nil
}
