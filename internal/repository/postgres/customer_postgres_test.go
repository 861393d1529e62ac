package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

var customerColumns = []string{"id", "name", "email", "phone", "created_at"}

func TestCustomerPostgres_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCustomerPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs("Ada Lovelace", "ada@example.com", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec("INSERT INTO addresses").
			WithArgs(int64(1), "1 Main St", int64(7), nil).
			WillReturnResult(sqlmock.NewResult(11, 1))
		mock.ExpectCommit()
		mock.ExpectQuery(`FROM customers c WHERE c.id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(1, "Ada Lovelace", "ada@example.com", nil, time.Now()))
		mock.ExpectQuery(`WHERE a.customer_id IN \(\$1\)`).
			WithArgs(int64(1)).
			WillReturnRows(addressRow(sqlmock.NewRows(addressColumns), 11, 1, "1 Main St"))

		got, err := repo.Create(ctx,
			&model.Customer{Name: "Ada Lovelace", Email: "ada@example.com"},
			[]repository.AddressRecord{{Street: "1 Main St", CityID: 7}},
		)

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		require.Len(t, got.Addresses, 1)
		assert.Equal(t, "California", got.Addresses[0].City.State.Name)
		assert.Equal(t, "US", got.Addresses[0].City.State.Country.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCustomerPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "customers_email_key"})
		mock.ExpectRollback()

		got, err := repo.Create(ctx, &model.Customer{Name: "Ada", Email: "ada@example.com"}, nil)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown city rolls back customer", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCustomerPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectExec("INSERT INTO addresses").
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "addresses_city_id_fkey"})
		mock.ExpectRollback()

		got, err := repo.Create(ctx,
			&model.Customer{Name: "Bob", Email: "bob@example.com"},
			[]repository.AddressRecord{{Street: "x", CityID: 999}},
		)

		assert.ErrorIs(t, err, repository.ErrInvalidReference)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerPostgres_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces address set", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCustomerPostgres(db)
		phone := "555-0100"

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE customers SET").
			WithArgs("Ada", "ada@example.com", phone, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM addresses WHERE customer_id = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()
		mock.ExpectQuery(`FROM customers c WHERE c.id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(5, "Ada", "ada@example.com", phone, time.Now()))
		mock.ExpectQuery(`WHERE a.customer_id IN`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(addressColumns))

		got, err := repo.Update(ctx, &model.Customer{ID: 5, Name: "Ada", Email: "ada@example.com", Phone: &phone}, nil)

		require.NoError(t, err)
		assert.Empty(t, got.Addresses)
		assert.NotNil(t, got.Addresses)
		assert.Equal(t, phone, *got.Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCustomerPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE customers SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		got, err := repo.Update(ctx, &model.Customer{ID: 42, Name: "x", Email: "x@example.com"}, nil)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM customers c WHERE c.id = \$1`).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(customerColumns))

		got, err := repo.FindByID(ctx, 9)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestCustomerPostgres_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters and pages", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCustomerPostgres(db)
		countryID := int64(1)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers c WHERE \(c.name ILIKE \$1 OR c.email ILIKE \$1\) AND EXISTS`).
			WithArgs(`%ad\_a%`, countryID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`ORDER BY c.created_at DESC, c.id DESC LIMIT \$3 OFFSET \$4`).
			WithArgs(`%ad\_a%`, countryID, 10, 0).
			WillReturnRows(sqlmock.NewRows(customerColumns).
				AddRow(2, "Ad_a Two", "two@example.com", nil, time.Now()).
				AddRow(1, "Ad_a One", "one@example.com", nil, time.Now()))
		mock.ExpectQuery(`WHERE a.customer_id IN \(\$1, \$2\)`).
			WithArgs(int64(2), int64(1)).
			WillReturnRows(addressRow(addressRow(sqlmock.NewRows(addressColumns), 20, 1, "a"), 21, 1, "b"))

		res, err := repo.List(ctx,
			repository.CustomerFilter{Search: " ad_a ", CountryID: &countryID},
			repository.PageQuery{Limit: 10, Offset: 0},
		)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Items, 2)
		assert.Empty(t, res.Items[0].Addresses)
		assert.Len(t, res.Items[1].Addresses, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty page skips address query", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCustomerPostgres(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers c$`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 30).
			WillReturnRows(sqlmock.NewRows(customerColumns))

		res, err := repo.List(ctx, repository.CustomerFilter{}, repository.PageQuery{Limit: 10, Offset: 30})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerPostgres_ListAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerPostgres(db)
	stateID := int64(3)

	mock.ExpectQuery(`fc.state_id = \$1\) ORDER BY c.id`).
		WithArgs(stateID).
		WillReturnRows(sqlmock.NewRows(customerColumns).AddRow(1, "Ada", "ada@example.com", nil, time.Now()))
	mock.ExpectQuery(`WHERE a.customer_id IN \(\$1\)`).
		WithArgs(int64(1)).
		WillReturnRows(addressRow(sqlmock.NewRows(addressColumns), 20, 1, "a"))

	got, err := repo.ListAll(context.Background(), repository.CustomerFilter{StateID: &stateID})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Addresses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerPostgres_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM customers WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, 1))

	mock.ExpectExec(`DELETE FROM customers WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 2), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerPostgres_Stats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCustomerPostgres(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\),\s+COUNT\(\*\) FILTER \(WHERE NOT EXISTS \(SELECT 1 FROM addresses a WHERE a.customer_id = c.id\)\)\s+FROM customers c`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "without_address"}).AddRow(4, 1))
	mock.ExpectQuery(`COUNT\(DISTINCT a.customer_id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
			AddRow(1, "United States", 2).
			AddRow(2, "Dominican Republic", 1))

	got, err := repo.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalCustomers)
	assert.Equal(t, 1, got.CustomersWithoutAddress)
	assert.Equal(t, []model.CountryCount{
		{CountryID: 1, Country: "United States", Count: 2},
		{CountryID: 2, Country: "Dominican Republic", Count: 1},
	}, got.CustomersByCountry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerWhere(t *testing.T) {
	where, args := customerWhere(repository.CustomerFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	state := int64(4)
	where, args = customerWhere(repository.CustomerFilter{Search: "50%", StateID: &state})
	assert.Contains(t, where, `c.name ILIKE $1 OR c.email ILIKE $1`)
	assert.Contains(t, where, `fc.state_id = $2`)
	assert.Equal(t, []any{`%50\%%`, int64(4)}, args)
}
