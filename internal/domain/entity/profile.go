package entity

import "time"

// Role determines which dashboard and API surface a user can reach.
// The set is closed; any other value is rejected at the boundary.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
	RoleOfficer   Role = "officer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// Profile is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Phone        string
	Location     string
	Bio          string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
