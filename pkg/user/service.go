package user

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
)

const storagePath = "storage/user_photos"

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id string) error
	GetAllUsers(ctx context.Context) ([]User, error)
	StoreUserPhoto(ctx context.Context, photo []byte) error
	GetUserPhoto(ctx context.Context, id string) ([]byte, error)
	DeleteUserPhoto(ctx context.Context) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentID(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.GetUser(ctx, userId)
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	return s.repo.UpdateUser(ctx, user)
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *ServiceImpl) StoreUserPhoto(ctx context.Context, photo []byte) error {
	userId, err := CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return err
	}
	return os.WriteFile(photoFile(userId), photo, 0644)
}

func (s *ServiceImpl) GetUserPhoto(_ context.Context, id string) ([]byte, error) {
	expectedFile := photoFile(id)
	if _, err := os.Stat(expectedFile); os.IsNotExist(err) {
		return nil, nil
	}
	return os.ReadFile(expectedFile)
}

func (s *ServiceImpl) DeleteUserPhoto(ctx context.Context) error {
	userId, err := CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	expectedFile := photoFile(userId)
	if _, err := os.Stat(expectedFile); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(expectedFile)
}

func photoFile(userId string) string {
	return storagePath + "/" + userId + ".jpg"
}
