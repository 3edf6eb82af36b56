// Package service holds the business rules between the HTTP surfaces and the
// store: input validation, credential checks, and ownership scoping. All
// failures are apperror values that handlers translate at the request
// boundary.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"foundling/internal/apperror"
	"foundling/internal/model"
	"foundling/internal/store"
)

// Register creates a new account. It has no session side effect; the user
// still has to log in.
func Register(ctx context.Context, db *sql.DB, username, email, password string) (*model.User, error) {
	switch {
	case username == "":
		return nil, apperror.Validation("username", "username is required")
	case email == "":
		return nil, apperror.Validation("email", "email is required")
	case password == "":
		return nil, apperror.Validation("password", "password is required")
	}

	// Pre-check for a friendlier error. The UNIQUE constraint below is the
	// real guard against a concurrent registration of the same name.
	existing, err := store.GetUserByUsername(ctx, db, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.DuplicateUser(username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := store.CreateUser(ctx, db, username, email, string(hash))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperror.DuplicateUser(username)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the matching user. The bcrypt
// comparison is constant-time.
func Login(ctx context.Context, db *sql.DB, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, apperror.Validation("", "username and password are required")
	}

	user, err := store.GetUserByUsername(ctx, db, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrAuthentication
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrAuthentication
	}

	return user, nil
}
