package repository

import (
	"context"
	"testing"

	"frogbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetRepository_GetByMessageID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewSheetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no sheet found", func(t *testing.T) {
		sheet, err := repo.GetByMessageID(ctx, 12345)
		require.NoError(t, err)
		assert.Nil(t, sheet)
	})

	t.Run("round-trips all fields exactly", func(t *testing.T) {
		original := testutil.CreateTestSheetWithApprovals(100, 200, 300, 401, 402)
		err := repo.Upsert(ctx, original)
		require.NoError(t, err)

		sheet, err := repo.GetByMessageID(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, sheet)

		assert.Equal(t, original.MessageID, sheet.MessageID)
		assert.Equal(t, original.ChannelID, sheet.ChannelID)
		assert.Equal(t, original.OwnerID, sheet.OwnerID)
		assert.Equal(t, original.Approvals, sheet.Approvals)
		assert.False(t, sheet.CreatedAt.IsZero())
		assert.False(t, sheet.UpdatedAt.IsZero())
	})

	t.Run("empty approvals scan as empty slice", func(t *testing.T) {
		original := testutil.CreateTestSheet(101, 201, 301)
		err := repo.Upsert(ctx, original)
		require.NoError(t, err)

		sheet, err := repo.GetByMessageID(ctx, 101)
		require.NoError(t, err)
		require.NotNil(t, sheet)
		assert.NotNil(t, sheet.Approvals)
		assert.Empty(t, sheet.Approvals)
	})
}

func TestSheetRepository_Upsert(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewSheetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("updates on conflict", func(t *testing.T) {
		sheet := testutil.CreateTestSheet(100, 200, 300)
		require.NoError(t, repo.Upsert(ctx, sheet))

		sheet.AddApproval(401)
		require.NoError(t, repo.Upsert(ctx, sheet))

		stored, err := repo.GetByMessageID(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, []int64{401}, stored.Approvals)
	})

	t.Run("preserves approval order", func(t *testing.T) {
		sheet := testutil.CreateTestSheetWithApprovals(102, 202, 302, 403, 401, 402)
		require.NoError(t, repo.Upsert(ctx, sheet))

		stored, err := repo.GetByMessageID(ctx, 102)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, []int64{403, 401, 402}, stored.Approvals)
	})
}

func TestSheetRepository_Delete(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewSheetRepository(testDB.DB)
	ctx := context.Background()

	sheet := testutil.CreateTestSheet(100, 200, 300)
	require.NoError(t, repo.Upsert(ctx, sheet))

	require.NoError(t, repo.Delete(ctx, 100))

	stored, err := repo.GetByMessageID(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Deleting an absent sheet is not an error
	require.NoError(t, repo.Delete(ctx, 100))
}

func TestSheetRepository_GetAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewSheetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		sheets, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, sheets)
	})

	t.Run("returns every record", func(t *testing.T) {
		for i := int64(0); i < 3; i++ {
			sheet := testutil.CreateTestSheet(100+i, 200+i, 300+i)
			require.NoError(t, repo.Upsert(ctx, sheet))
		}

		sheets, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, sheets, 3)
	})
}
