package models

import "time"

// RoleType represents the role of a user
type RoleType string

// Role constants
const (
	RoleStudent RoleType = "STUDENT"
	RoleFaculty RoleType = "FACULTY"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                     // Unique identifier for the user
	Name      string    `json:"name" db:"name" example:"Jane Doe"`          // Display name shown on results
	Email     string    `json:"email" db:"email" example:"jane@school.edu"` // User's email address (unique)
	Password  string    `json:"-" db:"password"`                            // Bcrypt hash (excluded from JSON)
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`  // STUDENT or FACULTY
	CreatedAt time.Time `json:"createdAt" db:"created_at"`                  // Timestamp when the user was created
}
