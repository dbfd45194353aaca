package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"drip/internal/models"
)

// SaveOutfit persists an outfit. Each call inserts a new row; saving the
// same candidate twice yields two outfits.
func SaveOutfit(db *sql.DB, outfit models.Outfit) (int, error) {
	itemIDs, err := json.Marshal(outfit.ItemIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode item ids: %w", err)
	}

	query := `
		INSERT INTO outfits (name, occasion, weather_summary, item_ids, reasoning)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, outfit.Name, outfit.Occasion, outfit.WeatherSummary,
		string(itemIDs), outfit.Reasoning)
	if err != nil {
		return 0, fmt.Errorf("failed to save outfit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get outfit ID: %w", err)
	}

	return int(id), nil
}

func GetOutfit(db *sql.DB, outfitID int) (*models.Outfit, error) {
	query := `
		SELECT id, name, occasion, weather_summary, item_ids, reasoning, rating, created_at
		FROM outfits
		WHERE id = ?
	`

	outfit := &models.Outfit{}
	var itemIDs string
	var rating sql.NullInt64

	err := db.QueryRow(query, outfitID).Scan(
		&outfit.ID,
		&outfit.Name,
		&outfit.Occasion,
		&outfit.WeatherSummary,
		&itemIDs,
		&outfit.Reasoning,
		&rating,
		&outfit.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("outfit not found")
		}
		return nil, fmt.Errorf("failed to query outfit: %w", err)
	}

	if err := json.Unmarshal([]byte(itemIDs), &outfit.ItemIDs); err != nil {
		outfit.ItemIDs = []int{}
	}
	if rating.Valid {
		r := int(rating.Int64)
		outfit.Rating = &r
	}

	return outfit, nil
}

// RateOutfit sets an outfit's rating (1-5).
func RateOutfit(db *sql.DB, outfitID, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	result, err := db.Exec("UPDATE outfits SET rating = ? WHERE id = ?", rating, outfitID)
	if err != nil {
		return fmt.Errorf("failed to rate outfit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("outfit not found")
	}

	return nil
}
