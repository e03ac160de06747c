package repository

import (
	"context"
	"regexp"
	"testing"

	"commons/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMembershipRepository_Assign(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	membership := &models.Membership{UserID: 1, CommunityID: 2, RoleID: 3}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "memberships"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Assign(ctx, membership)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Assign_Reassignment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	// The ON CONFLICT clause turns a second assignment for the same pair
	// into an UPDATE of role_id rather than a duplicate row.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("user_id","community_id") DO UPDATE`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Assign(ctx, &models.Membership{UserID: 1, CommunityID: 2, RoleID: 4})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_GetRole(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "memberships" WHERE user_id = $1 AND community_id = $2`)).
		WithArgs(1, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "community_id", "role_id"}).
			AddRow(1, 2, 3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_name"}).
			AddRow(3, models.RoleModerator, "Moderator"))

	role, err := repo.GetRole(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_GetRole_NoMembership(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "memberships"`)).
		WithArgs(1, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "community_id", "role_id"}))

	role, err := repo.GetRole(ctx, 1, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Remove(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "memberships" WHERE user_id = $1 AND community_id = $2`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Remove(ctx, 1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Remove_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	// The zero-row DELETE itself succeeds, so the transaction commits; the
	// not-found check runs on RowsAffected afterwards.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "memberships"`)).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Remove(ctx, 1, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Roster(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "memberships" JOIN users ON users.id = memberships.user_id LEFT JOIN roles ON roles.id = memberships.role_id WHERE memberships.community_id = $1`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "picture", "role_name", "role_display_name"}).
			AddRow(1, "ada", "", "community_founder", "Founder").
			AddRow(2, "linus", "", nil, nil))

	roster, err := repo.Roster(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, roster, 2)
	assert.Equal(t, "ada", roster[0].Username)
	assert.Equal(t, "community_founder", *roster[0].RoleName)
	assert.Nil(t, roster[1].RoleName, "dangling role_id surfaces as null role")
	assert.NoError(t, mock.ExpectationsWereMet())
}
