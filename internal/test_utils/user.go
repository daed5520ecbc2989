package test_utils

import (
	"context"

	"github.com/hireflow/hireflow/pkg/user"
)

// TestUser is the account test contexts run as.
var TestUser = user.User{
	ID:    "user-123",
	Name:  "Test Recruiter",
	Role:  user.RoleRecruiter,
	Color: "blue",
}

// ContextWithTestUser returns a context carrying TestUser, matching what the
// X-User-Id middleware produces in production.
func ContextWithTestUser() context.Context {
	return user.WithUser(context.Background(), TestUser)
}
