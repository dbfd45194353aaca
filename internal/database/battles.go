package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"drip/internal/models"
)

// SaveBattle appends an immutable battle record. The winner must be "a"
// or "b". Returns the new battle id.
func SaveBattle(db *sql.DB, battle models.Battle) (int, error) {
	if battle.Winner != "a" && battle.Winner != "b" {
		return 0, fmt.Errorf("invalid battle winner %q", battle.Winner)
	}

	aIDs, err := json.Marshal(battle.OutfitAIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode outfit a ids: %w", err)
	}
	bIDs, err := json.Marshal(battle.OutfitBIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode outfit b ids: %w", err)
	}

	query := `
		INSERT INTO battles (outfit_a_ids, outfit_b_ids, outfit_a_name, outfit_b_name, winner, occasion, weather_summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, string(aIDs), string(bIDs), battle.OutfitAName,
		battle.OutfitBName, battle.Winner, battle.Occasion, battle.WeatherSummary)
	if err != nil {
		return 0, fmt.Errorf("failed to save battle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get battle ID: %w", err)
	}

	return int(id), nil
}

// ListBattles returns the most recent battles, newest first.
func ListBattles(db *sql.DB, limit int) ([]models.Battle, error) {
	query := `
		SELECT id, outfit_a_ids, outfit_b_ids, outfit_a_name, outfit_b_name,
		       winner, occasion, weather_summary, created_at
		FROM battles
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query battles: %w", err)
	}
	defer rows.Close()

	var battles []models.Battle
	for rows.Next() {
		var battle models.Battle
		var aIDs, bIDs string
		var weatherSummary sql.NullString

		err := rows.Scan(
			&battle.ID,
			&aIDs,
			&bIDs,
			&battle.OutfitAName,
			&battle.OutfitBName,
			&battle.Winner,
			&battle.Occasion,
			&weatherSummary,
			&battle.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan battle: %w", err)
		}

		if err := json.Unmarshal([]byte(aIDs), &battle.OutfitAIDs); err != nil {
			battle.OutfitAIDs = []int{}
		}
		if err := json.Unmarshal([]byte(bIDs), &battle.OutfitBIDs); err != nil {
			battle.OutfitBIDs = []int{}
		}
		if weatherSummary.Valid {
			battle.WeatherSummary = weatherSummary.String
		}

		battles = append(battles, battle)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating battles: %w", err)
	}

	return battles, nil
}

func CountBattles(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM battles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count battles: %w", err)
	}
	return count, nil
}
