package migration

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := newSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	var versions []uint
	for v := first; ; {
		versions = append(versions, v)
		next, err := src.Next(v)
		if err != nil {
			break
		}
		v = next
	}
	assert.Equal(t, []uint{1, 2, 3}, versions)

	for _, v := range versions {
		r, id, err := src.ReadUp(v)
		require.NoError(t, err, "up migration %d", v)
		body, err := io.ReadAll(r)
		r.Close()
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.NotEmpty(t, body)

		down, _, err := src.ReadDown(v)
		require.NoError(t, err, "down migration %d", v)
		down.Close()
	}
}

func TestAddressCityIsProtected(t *testing.T) {
	src, err := newSource()
	require.NoError(t, err)
	defer src.Close()

	r, _, err := src.ReadUp(2)
	require.NoError(t, err)
	defer r.Close()
	body, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Contains(t, string(body), "REFERENCES cities (id) ON DELETE RESTRICT")
	assert.Contains(t, string(body), "REFERENCES customers (id) ON DELETE CASCADE")
}

func TestEnsureMigrated_ReleasesConnectionOnDriverFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT CURRENT_DATABASE\(\)`).WillReturnError(errors.New("connection reset"))

	err = EnsureMigrated(context.Background(), db, "localhost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration open_driver")
	assert.Equal(t, 0, db.Stats().InUse)
	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}
