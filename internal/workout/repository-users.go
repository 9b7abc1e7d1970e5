package workout

import (
	"context"
	"crypto/rand"
	"fmt"
)

// sqliteUserRepository persists user accounts and their API tokens.
type sqliteUserRepository struct {
	baseRepository
}

// Create inserts a new user with a freshly generated API token.
func (r *sqliteUserRepository) Create(ctx context.Context, displayName string) (User, error) {
	user := User{
		DisplayName: displayName,
		APIToken:    rand.Text(),
	}

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (display_name, api_token)
		VALUES (?, ?)`,
		user.DisplayName, user.APIToken)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("last insert id: %w", err)
	}
	user.ID = int(id)

	return user, nil
}

// GetByToken resolves an API token to a user. Returns ErrNotFound for
// unknown tokens.
func (r *sqliteUserRepository) GetByToken(ctx context.Context, token string) (User, error) {
	var user User
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, display_name, api_token
		FROM users
		WHERE api_token = ?`, token).Scan(&user.ID, &user.DisplayName, &user.APIToken)
	if err != nil {
		return User{}, fmt.Errorf("query user by token: %w", asRepoError(err))
	}
	return user, nil
}

// Get retrieves a user by ID.
func (r *sqliteUserRepository) Get(ctx context.Context, id int) (User, error) {
	var user User
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, display_name, api_token
		FROM users
		WHERE id = ?`, id).Scan(&user.ID, &user.DisplayName, &user.APIToken)
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", asRepoError(err))
	}
	return user, nil
}
