package database

import (
	"database/sql"
	"fmt"
	"time"

	"drip/internal/models"
)

const wearDateLayout = "2006-01-02"

// Today returns the current date in the wear-log date format.
func Today() string {
	return time.Now().Format(wearDateLayout)
}

// LogWear records a garment as worn on a date (today when dateWorn is
// empty). Returns false when an entry already exists for that
// (item, date) pair; the duplicate is a no-op, not an error.
func LogWear(db *sql.DB, itemID int, dateWorn string, outfitID *int) (bool, error) {
	if dateWorn == "" {
		dateWorn = Today()
	}

	result, err := db.Exec(
		"INSERT OR IGNORE INTO wear_log (item_id, outfit_id, date_worn) VALUES (?, ?, ?)",
		itemID, outfitID, dateWorn,
	)
	if err != nil {
		return false, fmt.Errorf("failed to log wear: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetWearLog returns wear entries joined with garment details, newest
// first. Empty itemID/startDate/endDate mean "no constraint".
func GetWearLog(db *sql.DB, itemID int, startDate, endDate string) ([]models.WearEntry, error) {
	query := `
		SELECT wl.id, wl.item_id, wl.outfit_id, wl.date_worn,
		       wi.name, wi.category, wi.image_filename
		FROM wear_log wl
		JOIN wardrobe_items wi ON wl.item_id = wi.id
		WHERE 1=1
	`
	var params []interface{}

	if itemID > 0 {
		query += " AND wl.item_id = ?"
		params = append(params, itemID)
	}
	if startDate != "" {
		query += " AND wl.date_worn >= ?"
		params = append(params, startDate)
	}
	if endDate != "" {
		query += " AND wl.date_worn <= ?"
		params = append(params, endDate)
	}

	query += " ORDER BY wl.date_worn DESC"

	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wear log: %w", err)
	}
	defer rows.Close()

	var entries []models.WearEntry
	for rows.Next() {
		var entry models.WearEntry
		var outfitID sql.NullInt64

		err := rows.Scan(
			&entry.ID,
			&entry.ItemID,
			&outfitID,
			&entry.DateWorn,
			&entry.ItemName,
			&entry.ItemCategory,
			&entry.ItemImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wear entry: %w", err)
		}

		if outfitID.Valid {
			id := int(outfitID.Int64)
			entry.OutfitID = &id
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wear log: %w", err)
	}

	return entries, nil
}

// GetLastWornDate returns the most recent wear date for a garment, or
// empty string when it has never been worn.
func GetLastWornDate(db *sql.DB, itemID int) (string, error) {
	var lastWorn sql.NullString
	err := db.QueryRow(
		"SELECT MAX(date_worn) FROM wear_log WHERE item_id = ?", itemID,
	).Scan(&lastWorn)
	if err != nil {
		return "", fmt.Errorf("failed to query last worn date: %w", err)
	}

	if !lastWorn.Valid {
		return "", nil
	}
	return lastWorn.String, nil
}

// RecentWearIDs returns the ids of garments worn within the last N days.
func RecentWearIDs(db *sql.DB, days int) (map[int]bool, error) {
	rows, err := db.Query(
		"SELECT DISTINCT item_id FROM wear_log WHERE date_worn >= date('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent wear: %w", err)
	}
	defer rows.Close()

	ids := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan item id: %w", err)
		}
		ids[id] = true
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent wear: %w", err)
	}

	return ids, nil
}

// WornGarment pairs a garment with its wear count and last worn date.
type WornGarment struct {
	models.Garment
	WearCount int    `json:"wear_count"`
	LastWorn  string `json:"last_worn,omitempty"`
}

func GetMostWornGarments(db *sql.DB, limit int) ([]WornGarment, error) {
	query := `
		SELECT wi.id, wi.image_filename, wi.name, wi.category, wi.subcategory,
		       wi.colors, wi.pattern, wi.material, wi.formality, wi.seasons,
		       wi.notes, wi.active, wi.created_at, wi.updated_at,
		       COUNT(wl.id) as wear_count
		FROM wardrobe_items wi
		JOIN wear_log wl ON wi.id = wl.item_id
		WHERE wi.active = 1
		GROUP BY wi.id
		ORDER BY wear_count DESC
		LIMIT ?
	`
	return queryWornGarments(db, query, false, limit)
}

func GetLeastWornGarments(db *sql.DB, limit int) ([]WornGarment, error) {
	query := `
		SELECT wi.id, wi.image_filename, wi.name, wi.category, wi.subcategory,
		       wi.colors, wi.pattern, wi.material, wi.formality, wi.seasons,
		       wi.notes, wi.active, wi.created_at, wi.updated_at,
		       COALESCE(COUNT(wl.id), 0) as wear_count,
		       MAX(wl.date_worn) as last_worn
		FROM wardrobe_items wi
		LEFT JOIN wear_log wl ON wi.id = wl.item_id
		WHERE wi.active = 1
		GROUP BY wi.id
		ORDER BY wear_count ASC, wi.created_at ASC
		LIMIT ?
	`
	return queryWornGarments(db, query, true, limit)
}

// GetForgottenGarments returns active garments not worn in the last N days,
// including garments never worn at all.
func GetForgottenGarments(db *sql.DB, days int) ([]WornGarment, error) {
	query := `
		SELECT wi.id, wi.image_filename, wi.name, wi.category, wi.subcategory,
		       wi.colors, wi.pattern, wi.material, wi.formality, wi.seasons,
		       wi.notes, wi.active, wi.created_at, wi.updated_at,
		       COUNT(wl.id) as wear_count,
		       MAX(wl.date_worn) as last_worn
		FROM wardrobe_items wi
		LEFT JOIN wear_log wl ON wi.id = wl.item_id
		WHERE wi.active = 1
		GROUP BY wi.id
		HAVING last_worn IS NULL OR last_worn < date('now', ?)
		ORDER BY last_worn ASC
	`
	return queryWornGarments(db, query, true, fmt.Sprintf("-%d days", days))
}

func queryWornGarments(db *sql.DB, query string, hasLastWorn bool, params ...interface{}) ([]WornGarment, error) {
	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to query worn garments: %w", err)
	}
	defer rows.Close()

	var garments []WornGarment
	for rows.Next() {
		var wg WornGarment
		var colorsJSON, seasonsJSON string
		var lastWorn sql.NullString

		dest := []interface{}{
			&wg.ID, &wg.ImageFilename, &wg.Name, &wg.Category, &wg.Subcategory,
			&colorsJSON, &wg.Pattern, &wg.Material, &wg.Formality, &seasonsJSON,
			&wg.Notes, &wg.Active, &wg.CreatedAt, &wg.UpdatedAt, &wg.WearCount,
		}
		if hasLastWorn {
			dest = append(dest, &lastWorn)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan worn garment: %w", err)
		}

		decodeJSONList(colorsJSON, &wg.Colors)
		decodeJSONList(seasonsJSON, &wg.Seasons)
		if lastWorn.Valid {
			wg.LastWorn = lastWorn.String
		}

		garments = append(garments, wg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating worn garments: %w", err)
	}

	return garments, nil
}
