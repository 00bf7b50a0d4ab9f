package postgres_test

import (
	"context"
	"testing"
	"time"

	"fundledger-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestInviteRepository_ConsumeUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewInviteRepository(db)
	ctx := context.Background()

	t.Run("ConsumesActiveLink", func(t *testing.T) {
		mock.ExpectExec("UPDATE invite_links").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.ConsumeUse(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ExhaustedLinkLeavesNoRow", func(t *testing.T) {
		mock.ExpectExec("UPDATE invite_links").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.ConsumeUse(ctx, 1)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteRepository_DeactivateExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewInviteRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectExec("UPDATE invite_links SET is_active = false").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.DeactivateExpired(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
