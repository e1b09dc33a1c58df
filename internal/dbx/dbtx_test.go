package dbx

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS items (id INTEGER PRIMARY KEY, title TEXT);`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO items(title) VALUES ('Trapano')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, db), "must commit on success")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO items(title) VALUES ('fail')`)
		require.NoError(t, e)
		return errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, 0, countRows(t, db), "must rollback when fn returns error")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countRows(t, db), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO items(title) VALUES ('panic')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}

func TestWithTxResult_ReturnsValueOnCommit(t *testing.T) {
	db := setupDB(t)

	id, err := WithTxResult(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int64, error) {
		res, err := tx.ExecContext(ctx, `INSERT INTO items(title) VALUES ('Libro')`)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.Equal(t, 1, countRows(t, db))
}

func TestWithTxResult_ZeroValueOnError(t *testing.T) {
	db := setupDB(t)

	v, err := WithTxResult(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (string, error) {
		_, _ = tx.ExecContext(ctx, `INSERT INTO items(title) VALUES ('x')`)
		return "partial", errors.New("nope")
	})
	require.Error(t, err)
	require.Equal(t, "", v)
	require.Equal(t, 0, countRows(t, db))
}

func TestIsInvalidText(t *testing.T) {
	bad := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

	require.True(t, IsInvalidText(bad))
	require.True(t, IsInvalidText(fmt.Errorf("db error: %w", bad)))
	require.False(t, IsInvalidText(&pgconn.PgError{Code: "23505"}))
	require.False(t, IsInvalidText(errors.New("boom")))
	require.False(t, IsInvalidText(nil))
}
