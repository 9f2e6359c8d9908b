package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"orgair_backend/internal/feature/companies/domain/entity"
	"orgair_backend/internal/platform/repository"
)

// setupTestDB prepares an in-memory SQLite database with the
// companies table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Company{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedCompany creates a company row directly.
func seedCompany(t *testing.T, db *gorm.DB, name string, industryID uuid.UUID) *entity.Company {
	t.Helper()

	c := &entity.Company{
		ID:         uuid.New(),
		Name:       name,
		IndustryID: industryID,
	}
	require.NoError(t, db.Create(c).Error, "failed to seed company")
	return c
}

func TestCompanyPostgres_InsertAndFindByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCompanyPostgres(db)
	ctx := context.Background()

	c := &entity.Company{Name: "Acme Robotics", Ticker: "ACME", IndustryID: uuid.New(), PositionFactor: 0.3}
	require.NoError(t, repo.Insert(ctx, c))
	assert.NotEqual(t, uuid.Nil, c.ID)

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Robotics", got.Name)
	assert.Equal(t, "ACME", got.Ticker)
}

func TestCompanyPostgres_SoftDelete(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCompanyPostgres(db)
	ctx := context.Background()

	c := seedCompany(t, db, "Acme", uuid.New())
	require.NoError(t, repo.Delete(ctx, c.ID))

	// Reads stop seeing the company.
	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	ok, err := repo.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// The row itself survives for referential history.
	var raw entity.Company
	require.NoError(t, db.Unscoped().Where("id = ?", c.ID).First(&raw).Error)
	assert.True(t, raw.IsDeleted)

	// Deleting again reports not found.
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), repository.ErrNotFound)
}

func TestCompanyPostgres_FindByQuery_FiltersDeleted(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCompanyPostgres(db)
	ctx := context.Background()
	industryID := uuid.New()

	seedCompany(t, db, "Active One", industryID)
	seedCompany(t, db, "Active Two", industryID)
	gone := seedCompany(t, db, "Gone", industryID)
	require.NoError(t, repo.Delete(ctx, gone.ID))

	rows, total, err := repo.FindByQuery(ctx, repository.Query{
		Filters: map[string]any{"industry_id": industryID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)
	for _, c := range rows {
		assert.NotEqual(t, "Gone", c.Name)
	}
}

func TestCompanyPostgres_CheckDuplicate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCompanyPostgres(db)
	ctx := context.Background()
	industryID := uuid.New()

	existing := seedCompany(t, db, "Acme", industryID)

	tests := []struct {
		name       string
		company    string
		industryID uuid.UUID
		excludeID  uuid.UUID
		want       bool
	}{
		{"same name same industry", "Acme", industryID, uuid.Nil, true},
		{"same name other industry", "Acme", uuid.New(), uuid.Nil, false},
		{"other name same industry", "Globex", industryID, uuid.Nil, false},
		{"excluding the match itself", "Acme", industryID, existing.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.CheckDuplicate(ctx, tt.company, tt.industryID, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompanyPostgres_CheckDuplicate_IgnoresDeleted(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCompanyPostgres(db)
	ctx := context.Background()
	industryID := uuid.New()

	c := seedCompany(t, db, "Acme", industryID)
	require.NoError(t, repo.Delete(ctx, c.ID))

	dup, err := repo.CheckDuplicate(ctx, "Acme", industryID, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, dup, "a retired company must not block name reuse")
}

func TestCompanyPostgres_IndustryOf(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCompanyPostgres(db)
	ctx := context.Background()
	industryID := uuid.New()

	c := seedCompany(t, db, "Acme", industryID)

	got, err := repo.IndustryOf(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, industryID, got)

	_, err = repo.IndustryOf(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// A retired company no longer resolves.
	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.IndustryOf(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
