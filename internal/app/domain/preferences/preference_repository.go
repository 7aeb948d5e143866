package preferences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-wander/internal/app/models"
)

// DB is the subset of pgxpool.Pool the repository needs; tests satisfy it
// with pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	CreatePreference(ctx context.Context, pref *models.UserPreference) error
	GetPreferencesByUser(ctx context.Context, userID string) ([]models.UserPreference, error)
	MatchByCategory(ctx context.Context, userID string, category models.WeatherCategory, limit int) ([]models.UserPreference, error)
	DeletePreference(ctx context.Context, userID string, id uuid.UUID) error
}

type RepositoryImpl struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &RepositoryImpl{db: db}
}

const preferenceColumns = `id, user_id, weather, temperature, time_of_day, activity, place_name, latitude, longitude, address, created_at`

// CreatePreference inserts a favorited suggestion. A second preference for
// the same user and place name is rejected with ErrConflict.
func (r *RepositoryImpl) CreatePreference(ctx context.Context, pref *models.UserPreference) error {
	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
	}
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = time.Now()
	}

	var existing uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT id FROM preferences WHERE user_id = $1 AND place_name = $2`,
		pref.UserID, pref.PlaceName,
	).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: a preference for this place already exists", models.ErrConflict)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("checking existing preference: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO preferences (`+preferenceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		pref.ID,
		pref.UserID,
		pref.Weather,
		pref.Temperature,
		pref.Time,
		pref.Activity,
		pref.PlaceName,
		pref.Latitude,
		pref.Longitude,
		pref.Address,
		pref.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting preference: %w", err)
	}
	return nil
}

// GetPreferencesByUser returns all of a user's preferences, newest first.
func (r *RepositoryImpl) GetPreferencesByUser(ctx context.Context, userID string) ([]models.UserPreference, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+preferenceColumns+`
		FROM preferences
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	defer rows.Close()

	return scanPreferences(rows)
}

// MatchByCategory returns the user's most recent preferences whose
// temperature band, condition label, or time band matches the current
// classification. A single matching axis is enough. limit <= 0 means
// unbounded.
func (r *RepositoryImpl) MatchByCategory(ctx context.Context, userID string, category models.WeatherCategory, limit int) ([]models.UserPreference, error) {
	query := `
		SELECT ` + preferenceColumns + `
		FROM preferences
		WHERE user_id = $1
		  AND (temperature = $2 OR weather = $3 OR time_of_day = $4)
		ORDER BY created_at DESC
	`
	args := []any{userID, category.Temperature, category.Condition, category.Time}
	if limit > 0 {
		query += ` LIMIT $5`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("matching preferences: %w", err)
	}
	defer rows.Close()

	return scanPreferences(rows)
}

// DeletePreference removes one preference owned by the user. Deleting
// another user's row reports ErrNotFound rather than leaking its existence.
func (r *RepositoryImpl) DeletePreference(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM preferences WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting preference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanPreferences(rows pgx.Rows) ([]models.UserPreference, error) {
	var prefs []models.UserPreference
	for rows.Next() {
		var p models.UserPreference
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Weather,
			&p.Temperature,
			&p.Time,
			&p.Activity,
			&p.PlaceName,
			&p.Latitude,
			&p.Longitude,
			&p.Address,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}
