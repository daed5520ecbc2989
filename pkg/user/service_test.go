package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateUser_MintsID(t *testing.T) {
	service := NewService(NewRepositoryStub())

	created, err := service.CreateUser(context.Background(), User{Name: "Dana", Role: RoleInterviewer})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	loaded, err := service.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", loaded.Name)
}

func TestService_GetCurrentUser(t *testing.T) {
	service := NewService(NewRepositoryStub())
	stored, err := service.CreateUser(context.Background(), User{Name: "Dana"})
	require.NoError(t, err)

	ctx := WithUser(context.Background(), stored)
	current, err := service.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, current.ID)

	_, err = service.GetCurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNoUser)
}
