package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/internal/domain/repository"
)

func TestWhereClauseEmpty(t *testing.T) {
	where, args := whereClause(repository.TaskFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestWhereClauseViewerScope(t *testing.T) {
	viewer := int64(7)
	where, args := whereClause(repository.TaskFilter{ViewerID: &viewer})
	assert.Equal(t, " WHERE (owner_id = $1 OR assignee_id = $1)", where)
	assert.Equal(t, []any{int64(7)}, args)
}

func TestWhereClauseCombined(t *testing.T) {
	viewer := int64(7)
	owner := int64(3)
	status := entity.TaskStatusPending
	search := "report"
	where, args := whereClause(repository.TaskFilter{
		ViewerID: &viewer,
		OwnerID:  &owner,
		Status:   &status,
		Search:   &search,
	})
	assert.Equal(t,
		" WHERE (owner_id = $1 OR assignee_id = $1) AND owner_id = $2 AND status = $3 AND (title ILIKE $4 OR description ILIKE $4)",
		where)
	assert.Equal(t, []any{int64(7), int64(3), entity.TaskStatusPending, "%report%"}, args)
}
