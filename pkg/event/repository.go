package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEvent(ctx context.Context, userId string, event Event) error
	GetEvent(ctx context.Context, userId string, eventId string) (Event, error)
	GetEvents(ctx context.Context, userId string, from, to time.Time) ([]Event, error)
	GetAllEvents(ctx context.Context, userId string) ([]Event, error)
	UpdateEvent(ctx context.Context, userId string, event Event) error
	DeleteEvent(ctx context.Context, userId string, eventId string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, userId string, event Event) error {
	query := `INSERT INTO calendar_event (
                            id,
                            title,
                            description,
                            start_time,
                            end_time,
                            color,
                            assignee_id,
                            user_id
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		event.ID,
		event.Title,
		event.Description,
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		string(event.Color),
		event.AssigneeID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}

	return nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, userId string, eventId string) (Event, error) {
	query := `SELECT id, title, description, start_time, end_time, color, assignee_id
              FROM calendar_event
              WHERE user_id = ? AND id = ?`

	row := r.db.QueryRowContext(ctx, query, userId, eventId)
	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return Event{}, ErrEventNotFound
	} else if err != nil {
		log.Errorf("could not read event %s: %v", eventId, err)
		return Event{}, err
	}
	return event, nil
}

// GetEvents returns all events that overlap the given period, ordered by
// start time.
func (r *RepositoryImpl) GetEvents(ctx context.Context, userId string, from, to time.Time) ([]Event, error) {
	query := `SELECT id, title, description, start_time, end_time, color, assignee_id
              FROM calendar_event
              WHERE user_id = ?
                AND start_time <= ?
                AND end_time >= ?
			  ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query, userId, to.UnixMilli(), from.UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *RepositoryImpl) GetAllEvents(ctx context.Context, userId string) ([]Event, error) {
	query := `SELECT id, title, description, start_time, end_time, color, assignee_id
              FROM calendar_event
              WHERE user_id = ?
              ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, userId string, event Event) error {
	query := `UPDATE calendar_event
              SET title = ?, description = ?, start_time = ?, end_time = ?, color = ?, assignee_id = ?
              WHERE user_id = ? AND id = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		event.Title,
		event.Description,
		event.StartTime.UnixMilli(),
		event.EndTime.UnixMilli(),
		string(event.Color),
		event.AssigneeID,
		userId,
		event.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, userId string, eventId string) error {
	query := `DELETE FROM calendar_event WHERE user_id = ? AND id = ?`

	_, err := r.db.ExecContext(ctx, query, userId, eventId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func scanEvent(scan func(dest ...any) error) (Event, error) {
	var event Event
	var startMillis, endMillis int64
	var color string
	if err := scan(&event.ID, &event.Title, &event.Description, &startMillis, &endMillis, &color, &event.AssigneeID); err != nil {
		return Event{}, err
	}
	event.StartTime = time.UnixMilli(startMillis)
	event.EndTime = time.UnixMilli(endMillis)
	event.Color = Color(color)
	return event, nil
}

func collectEvents(rows *sql.Rows) ([]Event, error) {
	events := make([]Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			log.Errorf("could not scan event row: %v", err)
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
