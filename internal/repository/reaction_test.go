package repository

import (
	"context"
	"regexp"
	"testing"

	"commons/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestReactionRepository_TogglePost_Created(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "post_reactions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	outcome, err := repo.TogglePost(ctx, 10, 1, "like")
	assert.NoError(t, err)
	assert.Equal(t, models.ReactionCreated, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactionRepository_TogglePost_Removed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	// Insert hits the unique (post_id, user_id) pair and does nothing,
	// then the same type on the existing row toggles it off.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "post_reactions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "post_reactions" WHERE post_id = $1 AND user_id = $2`)).
		WithArgs(10, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "reaction_type"}).
			AddRow(5, 10, 1, "like"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "post_reactions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	outcome, err := repo.TogglePost(ctx, 10, 1, "like")
	assert.NoError(t, err)
	assert.Equal(t, models.ReactionRemoved, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactionRepository_TogglePost_Updated(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "post_reactions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "post_reactions" WHERE post_id = $1 AND user_id = $2`)).
		WithArgs(10, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "reaction_type"}).
			AddRow(5, 10, 1, "like"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "post_reactions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	outcome, err := repo.TogglePost(ctx, 10, 1, "love")
	assert.NoError(t, err)
	assert.Equal(t, models.ReactionUpdated, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReactionRepository_ToggleComment_Created(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comment_reactions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	outcome, err := repo.ToggleComment(ctx, 7, 1, "like")
	assert.NoError(t, err)
	assert.Equal(t, models.ReactionCreated, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}
