package user

import "time"

// User is a login account tied to one directory employee. The role lives on
// the employee row and is joined in on read.
type User struct {
	ID           string
	EmployeeID   string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	Role     *string
	FullName *string
}
