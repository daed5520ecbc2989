package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrSettingsNotFound = errors.New("availability settings not found")

type Repository interface {
	GetSettings(ctx context.Context, userId string) (Settings, error)
	StoreSettings(ctx context.Context, userId string, settings Settings) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// GetSettings loads the visible window and the per-weekday working hours.
// A user with no visible-hours row has never stored settings.
func (r *RepositoryImpl) GetSettings(ctx context.Context, userId string) (Settings, error) {
	var settings Settings

	query := `SELECT from_hour, to_hour FROM visible_hours WHERE user_id = ?`
	err := r.db.QueryRowContext(ctx, query, userId).Scan(&settings.VisibleHours.From, &settings.VisibleHours.To)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, ErrSettingsNotFound
	} else if err != nil {
		log.Errorf("failed to load visible hours: %v", err)
		return Settings{}, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT weekday, from_hour, to_hour FROM working_hours WHERE user_id = ?`, userId)
	if err != nil {
		log.Errorf("failed to load working hours: %v", err)
		return Settings{}, err
	}
	defer rows.Close()

	settings.WorkingHours = WorkingHours{}
	for rows.Next() {
		var weekday int
		var hours HourRange
		if err := rows.Scan(&weekday, &hours.From, &hours.To); err != nil {
			return Settings{}, err
		}
		settings.WorkingHours[time.Weekday(weekday)] = hours
	}
	if err := rows.Err(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// StoreSettings replaces the user's availability configuration atomically.
func (r *RepositoryImpl) StoreSettings(ctx context.Context, userId string, settings Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM visible_hours WHERE user_id = ?`, userId); err != nil {
		return fmt.Errorf("could not clear visible hours: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM working_hours WHERE user_id = ?`, userId); err != nil {
		return fmt.Errorf("could not clear working hours: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO visible_hours (user_id, from_hour, to_hour) VALUES (?, ?, ?)`,
		userId, settings.VisibleHours.From, settings.VisibleHours.To)
	if err != nil {
		return fmt.Errorf("could not store visible hours: %w", err)
	}

	for weekday, hours := range settings.WorkingHours {
		_, err = tx.ExecContext(ctx, `INSERT INTO working_hours (user_id, weekday, from_hour, to_hour) VALUES (?, ?, ?, ?)`,
			userId, int(weekday), hours.From, hours.To)
		if err != nil {
			return fmt.Errorf("could not store working hours for weekday %d: %w", weekday, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
