package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"seo-spinner/internal/apperr"
	"seo-spinner/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestContentStore_GetBusiness(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`FROM "businesses" AS "b" WHERE \(b.id = 1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "industry", "primary_location", "brand_voice"}).
			AddRow(int64(1), "Acme Plumbing", "Plumbing", "Austin, TX", "friendly"))

	b, err := store.GetBusiness(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Plumbing", b.Name)
	assert.Equal(t, models.VoiceFriendly, b.BrandVoice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentStore_GetBusinessNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`FROM "businesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetBusiness(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentStore_GetBusinessDatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`FROM "businesses"`).WillReturnError(errors.New("connection reset"))

	_, err := store.GetBusiness(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeDatabase))
	assert.Equal(t, 500, apperr.StatusOf(err))
}

func TestContentStore_ServicesByIDsScopesToBusiness(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`FROM "services" AS "s" WHERE \(s.business_id = 1\) AND \(s.id IN \(2, 1\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}).
			AddRow(int64(1), int64(1), "Drain Cleaning").
			AddRow(int64(2), int64(1), "Water Heaters"))

	rows, err := store.ServicesByIDs(context.Background(), 1, []int64{2, 1})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Water Heaters", rows[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentStore_AreasByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`FROM "service_areas" AS "sa" WHERE \(sa.business_id = 3\) AND \(sa.id IN \(7\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "city", "state"}).
			AddRow(int64(7), int64(3), "Austin", "TX"))

	rows, err := store.AreasByIDs(context.Background(), 3, []int64{7})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Austin, TX", rows[0].Label())
}

func TestContentStore_ActiveTemplatesOnly(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`FROM "content_templates" AS "ct" WHERE \(ct.id IN \(1, 2\)\) AND \(ct.is_active = TRUE\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "section_type", "template_content", "word_count_target", "is_active"}).
			AddRow(int64(1), "Hero", "hero", "{COMPANY_NAME}", int64(150), true))

	rows, err := store.ActiveTemplatesByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.SectionHero, rows[0].SectionType)
	assert.Equal(t, 150, rows[0].WordCountTarget)
}

func TestContentStore_InsertGeneratedContent(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`INSERT INTO "generated_content" .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	row := &models.GeneratedContent{
		BusinessID:    1,
		ServiceID:     2,
		ServiceAreaID: 3,
		TemplateID:    4,
		SectionType:   models.SectionHero,
		Content:       "Drain cleaning in Austin.",
		Keywords:      models.StringList{"drain cleaning austin"},
		GeneratedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.InsertGeneratedContent(context.Background(), row))
	assert.Equal(t, int64(42), row.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentStore_InsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewContentStore(db)

	mock.ExpectQuery(`INSERT INTO "generated_content"`).WillReturnError(errors.New("foreign key violation"))

	err := store.InsertGeneratedContent(context.Background(), &models.GeneratedContent{})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeDatabase))
	assert.Equal(t, "Failed", apperr.MessageOf(err, "Failed"))
}
