package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id string) error
	GetAllUsers(ctx context.Context) ([]User, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreateUser(ctx context.Context, user User) error {
	query := `INSERT INTO users (id, name, picture_path, role, color) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.PicturePath,
		string(user.Role),
		user.Color,
	)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetUser(ctx context.Context, id string) (User, error) {
	query := `SELECT id, name, picture_path, role, color FROM users WHERE id = ?`
	var user User
	var role string
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.PicturePath, &role, &user.Color)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debugf("user with id %s not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	user.Role = Role(role)
	return user, nil
}

func (r *RepositoryImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	query := `UPDATE users SET name = ?, picture_path = ?, role = ?, color = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.PicturePath,
		string(user.Role),
		user.Color,
		user.ID,
	)
	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *RepositoryImpl) DeleteUser(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		log.Errorf("failed to delete user: %v", err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, name, picture_path, role, color FROM users ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		var role string
		if err := rows.Scan(&user.ID, &user.Name, &user.PicturePath, &role, &user.Color); err != nil {
			return nil, err
		}
		user.Role = Role(role)
		users = append(users, user)
	}
	return users, rows.Err()
}
