package entity

import (
	"strings"
	"time"
)

// Category classifies a support service directory entry.
type Category string

const (
	CategoryHousing   Category = "housing"
	CategoryEducation Category = "education"
	CategoryHealth    Category = "health"
	CategoryLegal     Category = "legal"
	CategoryOther     Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHousing, CategoryEducation, CategoryHealth, CategoryLegal, CategoryOther:
		return true
	}
	return false
}

// ParseCategory normalizes a raw query value into a Category.
// Matching is case-insensitive so ?category=HOUSING and ?category=housing
// select the same rows.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Valid()
}

// Service is a support-service directory entry (housing, legal aid, ...).
// Read-mostly; only admins create entries.
type Service struct {
	ID          string
	Name        string
	Description string
	Category    Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
