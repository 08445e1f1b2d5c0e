package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/medtrack-api/internal/domain/model"
	"github.com/medtrack/medtrack-api/internal/testutil"
)

func createTestUser(t *testing.T, db *sql.DB, email string) int {
	t.Helper()
	user, err := NewUserRepo(db).Create(context.Background(), CreateUserParams{Email: email, Name: email})
	require.NoError(t, err)
	return user.ID
}

func mustCreateRecord(t *testing.T, repo *RecordRepo, userID int, req model.CreateRecordRequest) *model.Record {
	t.Helper()
	rec, err := repo.Create(context.Background(), userID, &req)
	require.NoError(t, err)
	return rec
}

func TestRecordRepo_CreateAndGet(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepoWithTimeProvider(db, testutil.NewTestTimeProvider(testutil.TestTime()))
		userID := createTestUser(t, db, "records@example.com")
		measuredAt := time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

		rec := mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
			Value:           5.6,
			MeasurementTime: measuredAt,
			Notes:           testutil.StringPtr("fasting"),
		})
		assert.NotZero(t, rec.ID)
		assert.Equal(t, userID, rec.UserID)
		assert.Equal(t, model.ValueTypeBloodSugar, rec.ValueTypeID)
		assert.InDelta(t, 5.6, rec.Value, 0.001)
		assert.Nil(t, rec.Value2)
		assert.Equal(t, measuredAt, rec.MeasurementTime.UTC())
		assert.Equal(t, testutil.TestTime(), rec.CreatedAt.UTC())

		got, err := repo.GetByID(context.Background(), userID, rec.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Notes)
		assert.Equal(t, "fasting", *got.Notes)
	})
}

func TestRecordRepo_Create_BloodPressure(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		userID := createTestUser(t, db, "bp@example.com")

		rec := mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
			Value:           120,
			Value2:          testutil.Float64Ptr(80),
			ValueTypeID:     testutil.IntPtr(model.ValueTypeBloodPressure),
			MeasurementTime: time.Now().UTC(),
		})
		assert.Equal(t, model.ValueTypeBloodPressure, rec.ValueTypeID)
		require.NotNil(t, rec.Value2)
		assert.InDelta(t, 80, *rec.Value2, 0.001)
	})
}

func TestRecordRepo_GetByID_OtherUsersRecordIsNotFound(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		owner := createTestUser(t, db, "owner@example.com")
		other := createTestUser(t, db, "other@example.com")

		rec := mustCreateRecord(t, repo, owner, model.CreateRecordRequest{
			Value:           5.0,
			MeasurementTime: time.Now().UTC(),
		})

		_, err := repo.GetByID(context.Background(), other, rec.ID)
		require.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestRecordRepo_List(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		userID := createTestUser(t, db, "list@example.com")
		base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

		for i := range 3 {
			mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
				Value:           5.0 + float64(i),
				MeasurementTime: base.AddDate(0, 0, i),
			})
		}
		mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
			Value:           70,
			ValueTypeID:     testutil.IntPtr(model.ValueTypeWeight),
			MeasurementTime: base.AddDate(0, 0, 10),
		})

		recs, err := repo.List(context.Background(), userID, model.RecordsListOptions{})
		require.NoError(t, err)
		require.Len(t, recs, 4)
		// Newest measurement first.
		for i := 1; i < len(recs); i++ {
			assert.False(t, recs[i].MeasurementTime.After(recs[i-1].MeasurementTime))
		}

		filtered, err := repo.List(context.Background(), userID, model.RecordsListOptions{
			ValueTypeID: testutil.IntPtr(model.ValueTypeWeight),
		})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.InDelta(t, 70, filtered[0].Value, 0.001)

		paged, err := repo.List(context.Background(), userID, model.RecordsListOptions{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, paged, 2)
	})
}

func TestRecordRepo_Update(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		userID := createTestUser(t, db, "update@example.com")

		rec := mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
			Value:           5.6,
			MeasurementTime: time.Now().UTC(),
			Notes:           testutil.StringPtr("before"),
		})

		updated, err := repo.Update(context.Background(), userID, rec.ID, model.UpdateRecordRequest{
			Value: testutil.Float64Ptr(6.1),
			Notes: testutil.StringPtr("after"),
		})
		require.NoError(t, err)
		assert.InDelta(t, 6.1, updated.Value, 0.001)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "after", *updated.Notes)
	})
}

func TestRecordRepo_Update_BlankNotesClears(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		userID := createTestUser(t, db, "notes@example.com")

		rec := mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
			Value:           5.6,
			MeasurementTime: time.Now().UTC(),
			Notes:           testutil.StringPtr("something"),
		})

		updated, err := repo.Update(context.Background(), userID, rec.ID, model.UpdateRecordRequest{
			Notes: testutil.StringPtr("   "),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Notes)
	})
}

func TestRecordRepo_Update_OtherUsersRecord(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		owner := createTestUser(t, db, "uowner@example.com")
		other := createTestUser(t, db, "uother@example.com")

		rec := mustCreateRecord(t, repo, owner, model.CreateRecordRequest{
			Value:           5.0,
			MeasurementTime: time.Now().UTC(),
		})

		_, err := repo.Update(context.Background(), other, rec.ID, model.UpdateRecordRequest{
			Value: testutil.Float64Ptr(9.9),
		})
		require.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestRecordRepo_Delete(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		userID := createTestUser(t, db, "delete@example.com")

		rec := mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
			Value:           5.0,
			MeasurementTime: time.Now().UTC(),
		})

		ok, err := repo.Delete(context.Background(), userID, rec.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Delete(context.Background(), userID, rec.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRecordRepo_Stats(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		userID := createTestUser(t, db, "stats@example.com")
		base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

		for i, v := range []float64{5.0, 7.0, 6.0} {
			mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
				Value:           v,
				MeasurementTime: base.AddDate(0, 0, i),
			})
		}
		// Backfilled entry: inserted last, but measured earliest. It must
		// not win "latest".
		mustCreateRecord(t, repo, userID, model.CreateRecordRequest{
			Value:           9.0,
			MeasurementTime: base.AddDate(0, 0, -5),
		})

		stats, err := repo.Stats(context.Background(), userID, model.ValueTypeBloodSugar)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Count)
		require.NotNil(t, stats.Latest)
		assert.InDelta(t, 6.0, *stats.Latest, 0.001)
		require.NotNil(t, stats.Highest)
		assert.InDelta(t, 9.0, *stats.Highest, 0.001)
		require.NotNil(t, stats.Lowest)
		assert.InDelta(t, 5.0, *stats.Lowest, 0.001)
		require.NotNil(t, stats.Average)
		assert.InDelta(t, 6.75, *stats.Average, 0.001)
	})
}

func TestRecordRepo_Stats_Empty(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewRecordRepo(db)
		userID := createTestUser(t, db, "empty-stats@example.com")

		stats, err := repo.Stats(context.Background(), userID, model.ValueTypeBloodSugar)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Count)
		assert.Nil(t, stats.Latest)
		assert.Nil(t, stats.Highest)
		assert.Nil(t, stats.Lowest)
		assert.Nil(t, stats.Average)
	})
}
