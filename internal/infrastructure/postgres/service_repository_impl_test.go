package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

func TestBuildServiceListQueryNoFilter(t *testing.T) {
	q, args := buildServiceListQuery(repository.ServiceFilter{})

	assert.NotContains(t, q, "WHERE")
	assert.Contains(t, q, "ORDER BY name ASC")
	assert.Empty(t, args)
}

func TestBuildServiceListQueryCategory(t *testing.T) {
	q, args := buildServiceListQuery(repository.ServiceFilter{Category: entity.CategoryHousing})

	assert.Contains(t, q, "WHERE category = $1")
	assert.Contains(t, q, "ORDER BY name ASC")
	assert.Equal(t, []any{entity.CategoryHousing}, args)
}

func TestBuildServiceListQuerySearch(t *testing.T) {
	q, args := buildServiceListQuery(repository.ServiceFilter{Search: "resume"})

	// case-insensitive substring across name OR description
	assert.Contains(t, q, "(name ILIKE $1 OR description ILIKE $1)")
	assert.Contains(t, q, "ORDER BY name ASC")
	assert.Equal(t, []any{"%resume%"}, args)
}

func TestBuildServiceListQueryCategoryAndSearch(t *testing.T) {
	q, args := buildServiceListQuery(repository.ServiceFilter{
		Category: entity.CategoryLegal,
		Search:   "expunge",
	})

	assert.Contains(t, q, "WHERE category = $1 AND (name ILIKE $2 OR description ILIKE $2)")
	assert.Equal(t, []any{entity.CategoryLegal, "%expunge%"}, args)
}
