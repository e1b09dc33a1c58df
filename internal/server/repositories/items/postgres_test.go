package items

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passThrough lets text[] arguments reach the mock unchanged, as the pgx
// driver accepts them.
type passThrough struct{}

func (passThrough) ConvertValue(v any) (driver.Value, error) {
	if s, ok := v.([]string); ok {
		return s, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(passThrough{}),
	)
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var itemCols = []string{
	"id", "user_id", "title", "description", "kind", "category", "type", "price", "currency",
	"lat", "lng", "address_hint", "image_urls", "status", "expires_at", "views_count",
	"created_at", "updated_at",
}

var created = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func itemRow(id string, price any) []driver.Value {
	return []driver.Value{
		id, "u1", "Trapano Bosch", "Trapano a percussione", "object", "casa", "vendo", price, "EUR",
		45.4642, 9.19, "Via Roma", "{https://cdn.example.com/items/a.jpg,https://cdn.example.com/items/b.jpg}",
		"active", nil, int64(3), created, created,
	}
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	price := 25.0
	mock.ExpectQuery(`INSERT INTO items .* RETURNING created_at, updated_at`).
		WithArgs(sqlmock.AnyArg(), "u1", "Trapano Bosch", "desc", "object", "casa", "vendo",
			25.0, "EUR", 45.0, 9.0, "", []string{}, "active", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	item, err := repo.Create(context.Background(), &models.Item{
		UserID: "u1", Title: "Trapano Bosch", Description: "desc", Kind: models.KindObject,
		Category: "casa", Type: "vendo", Price: &price, Currency: "EUR", Lat: 45, Lng: 9,
		Status: models.StatusActive,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, created, item.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO items`).WillReturnError(errors.New("db is down"))

	_, err := repo.Create(context.Background(), &models.Item{ID: "i1"})
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM items i WHERE i.id = \$1`).
		WithArgs("i1").
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(itemRow("i1", 25.0)...))

	item, err := repo.GetByID(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, models.KindObject, item.Kind)
	assert.Equal(t, models.StatusActive, item.Status)
	require.NotNil(t, item.Price)
	assert.Equal(t, 25.0, *item.Price)
	assert.Nil(t, item.ExpiresAt)
	assert.Equal(t, []string{"https://cdn.example.com/items/a.jpg", "https://cdn.example.com/items/b.jpg"}, item.ImageURLs)
	assert.Equal(t, int64(3), item.ViewsCount)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM items`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	badUUID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	mock.ExpectQuery(`SELECT .* FROM items i WHERE i.id = \$1`).WithArgs("abc").WillReturnError(badUUID)
	mock.ExpectExec(`UPDATE items SET status = \$1`).WithArgs("sold", "abc", "u1").WillReturnError(badUUID)
	mock.ExpectQuery(`DELETE FROM items`).WithArgs("abc", "u1").WillReturnError(badUUID)

	_, err := repo.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "abc", "u1", models.StatusSold), common.ErrorNotFound)
	_, err = repo.Delete(context.Background(), "abc", "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementViews(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE items SET views_count = views_count \+ 1`).
		WithArgs("i1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), "i1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveInBox(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	box := geo.Box{MinLat: 45, MaxLat: 46, MinLng: 9, MaxLng: 10}
	cols := append(append([]string{}, itemCols...), "owner_name")

	center := geo.Point{Lat: 45.5, Lng: 9.5}
	mock.ExpectQuery(`FROM items i\s+LEFT JOIN profiles p .* i.status = 'active' .* ORDER BY \(i.lat - \$5\) \^ 2 .* LIMIT \$8`).
		WithArgs(45.0, 46.0, 9.0, 10.0, 45.5, 9.5, geo.LngScale(45.5), 200).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(append(itemRow("i1", 25.0), "Mario Rossi")...).
			AddRow(append(itemRow("i2", nil), "")...))

	got, err := repo.ListActiveInBox(context.Background(), center, box, 200)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mario Rossi", got[0].OwnerName)
	assert.Nil(t, got[1].Price)
	assert.Empty(t, got[1].OwnerName)
}

func TestListActiveInBox_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM items i`).WillReturnError(errors.New("boom"))

	_, err := repo.ListActiveInBox(context.Background(), geo.Point{}, geo.Box{}, 10)
	if err == nil || !regexp.MustCompile(`failed to select items: boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE i.user_id = \$1 ORDER BY i.created_at DESC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(itemRow("i1", 25.0)...))

	got, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UserID)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE items SET status = \$1`).
		WithArgs("sold", "i1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE items SET status = \$1`).
		WithArgs("sold", "i1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateStatus(context.Background(), "i1", "u1", models.StatusSold))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "i1", "intruder", models.StatusSold), common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM items i WHERE i.id = \$1 AND i.user_id = \$2 RETURNING`).
		WithArgs("i1", "u1").
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(itemRow("i1", 25.0)...))
	mock.ExpectQuery(`DELETE FROM items`).
		WithArgs("i1", "u2").
		WillReturnError(sql.ErrNoRows)

	item, err := repo.Delete(context.Background(), "i1", "u1")
	require.NoError(t, err)
	assert.Len(t, item.ImageURLs, 2)

	_, err = repo.Delete(context.Background(), "i1", "u2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
