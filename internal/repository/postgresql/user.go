package postgresql

import (
	"context"
	"fmt"

	"github.com/facekeep/timekeep-backend-go/internal/domain/user"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.employee_id, u.email, u.password_hash, u.created_at, u.updated_at,
			   e.role, e.full_name
		FROM users u
		JOIN employees e ON e.id = u.employee_id
		WHERE u.email = $1 AND e.deleted_at IS NULL
	`

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(&u.ID, &u.EmployeeID, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.Role, &u.FullName)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.employee_id, u.email, u.password_hash, u.created_at, u.updated_at,
			   e.role, e.full_name
		FROM users u
		JOIN employees e ON e.id = u.employee_id
		WHERE u.id = $1 AND e.deleted_at IS NULL
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(&u.ID, &u.EmployeeID, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.Role, &u.FullName)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (employee_id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, newUser.EmployeeID, newUser.Email, newUser.PasswordHash).
		Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return newUser, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	if _, err := q.Exec(ctx, query, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
