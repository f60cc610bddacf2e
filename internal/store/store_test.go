package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tnmai/diemdanh_backend/internal/database"
	"github.com/tnmai/diemdanh_backend/internal/models"
	"github.com/tnmai/diemdanh_backend/internal/store"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("needs a postgres container; run without -short")
	}

	ctx := context.Background()
	pg, err := tcpostgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("diemdanh"),
		tcpostgres.WithUsername("diemdanh"),
		tcpostgres.WithPassword("diemdanh"),
		tc.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d.UTC()
}

func TestAttendanceUpsertKeepsOneRowAndReprices(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	students := store.NewStudentStore(db)
	records := store.NewAttendanceStore(db)

	st, err := students.Create(ctx, "Nguyễn Văn An")
	require.NoError(t, err)

	d := day(t, "2025-03-01")

	first, err := records.Upsert(ctx, st.ID, d, false, 70000)
	require.NoError(t, err)
	assert.Equal(t, 70000, first.DailyFee)
	assert.False(t, first.IsAbsent)

	// Marking the same day again must not create a second row, and the fee
	// snapshot is overwritten with the rate in force at re-marking time.
	second, err := records.Upsert(ctx, st.ID, d, true, 80000)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsAbsent)
	assert.Equal(t, 80000, second.DailyFee)

	all, err := records.Find(ctx, store.AttendanceFilter{StudentID: st.ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAttendanceFindByMonthAndDay(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	students := store.NewStudentStore(db)
	records := store.NewAttendanceStore(db)

	st, err := students.Create(ctx, "Trần Thị Bình")
	require.NoError(t, err)

	for _, d := range []string{"2025-02-28", "2025-03-01", "2025-03-31", "2025-04-01"} {
		_, err := records.Upsert(ctx, st.ID, day(t, d), false, 70000)
		require.NoError(t, err)
	}

	start, end := day(t, "2025-03-01"), day(t, "2025-04-01")
	march, err := records.Find(ctx, store.AttendanceFilter{
		StudentID:  st.ID,
		MonthStart: &start,
		MonthEnd:   &end,
	})
	require.NoError(t, err)
	require.Len(t, march, 2)
	// Newest first.
	assert.Equal(t, "2025-03-31", march[0].Date.UTC().Format("2006-01-02"))
	assert.Equal(t, "2025-03-01", march[1].Date.UTC().Format("2006-01-02"))

	exact := day(t, "2025-02-28")
	feb, err := records.Find(ctx, store.AttendanceFilter{StudentID: st.ID, Day: &exact})
	require.NoError(t, err)
	assert.Len(t, feb, 1)
}

func TestStudentSoftDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	students := store.NewStudentStore(db)

	st, err := students.Create(ctx, "Lê Hoàng Cường")
	require.NoError(t, err)

	deletedAt, err := students.SoftDelete(ctx, st.ID)
	require.NoError(t, err)
	assert.False(t, deletedAt.IsZero())

	// Dropped from active listings...
	active, err := students.List(ctx, true)
	require.NoError(t, err)
	for _, s := range active {
		assert.NotEqual(t, st.ID, s.ID)
	}

	// ...but still addressable by id, with the deletion stamp set.
	got, err := students.ByID(ctx, st.ID)
	require.NoError(t, err)
	assert.True(t, got.DeletedAt.Valid)

	// Renaming or re-deleting a deleted student is NotFound.
	_, err = students.UpdateName(ctx, st.ID, "Khác")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = students.SoftDelete(ctx, st.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStudentUpdateName(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	students := store.NewStudentStore(db)

	st, err := students.Create(ctx, "Phạm Thị Dung")
	require.NoError(t, err)

	renamed, err := students.UpdateName(ctx, st.ID, "Phạm Thị Dung Anh")
	require.NoError(t, err)
	assert.Equal(t, "Phạm Thị Dung Anh", renamed.Name)

	_, err = students.UpdateName(ctx, "00000000-0000-0000-0000-000000000000", "Ai Đó")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSettingStore(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	settings := store.NewSettingStore(db, 70000)

	_, err := settings.Get(ctx, store.DailyFeeKey)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Unset falls back to the configured default.
	fee, err := settings.DailyFee(ctx)
	require.NoError(t, err)
	assert.Equal(t, 70000, fee)

	require.NoError(t, settings.Upsert(ctx, store.DailyFeeKey, "90000", "Học phí hàng ngày (VND)"))
	fee, err = settings.DailyFee(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90000, fee)

	// Updating without a description keeps the stored one.
	require.NoError(t, settings.Upsert(ctx, store.DailyFeeKey, "95000", ""))
	var setting models.AppSetting
	require.NoError(t, db.Where("key = ?", store.DailyFeeKey).First(&setting).Error)
	assert.Equal(t, "95000", setting.Value)
	assert.Equal(t, "Học phí hàng ngày (VND)", setting.Description)

	all, err := settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "95000", all[store.DailyFeeKey])
}
