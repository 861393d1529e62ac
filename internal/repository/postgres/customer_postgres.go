package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// CustomerPostgres is a PostgreSQL implementation of repository.CustomerRepository.
type CustomerPostgres struct {
	db *sql.DB
}

// NewCustomerPostgres creates a new CustomerPostgres repository.
func NewCustomerPostgres(db *sql.DB) *CustomerPostgres {
	return &CustomerPostgres{db: db}
}

var _ repository.CustomerRepository = (*CustomerPostgres)(nil)

const customerSelect = `SELECT c.id, c.name, c.email, c.phone, c.created_at FROM customers c`

// Create inserts the customer row and its addresses atomically.
func (r *CustomerPostgres) Create(ctx context.Context, c *model.Customer, addresses []repository.AddressRecord) (*model.Customer, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO customers (name, email, phone) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.QueryRowContext(ctx, q, c.Name, c.Email, c.Phone).Scan(&id); err != nil {
			return err
		}
		return insertAddresses(ctx, tx, id, addresses)
	})
	if err != nil {
		return nil, translateWrite(err)
	}
	return r.FindByID(ctx, id)
}

// Update overwrites the customer and replaces its address set: every existing address is deleted
// and the given ones are inserted.
func (r *CustomerPostgres) Update(ctx context.Context, c *model.Customer, addresses []repository.AddressRecord) (*model.Customer, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = `UPDATE customers SET name = $1, email = $2, phone = $3 WHERE id = $4`
		res, err := tx.ExecContext(ctx, q, c.Name, c.Email, c.Phone, c.ID)
		if err != nil {
			return err
		}
		if err := expectAffected(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM addresses WHERE customer_id = $1`, c.ID); err != nil {
			return err
		}
		return insertAddresses(ctx, tx, c.ID, addresses)
	})
	if err != nil {
		return nil, translateWrite(err)
	}
	return r.FindByID(ctx, c.ID)
}

func insertAddresses(ctx context.Context, tx *sql.Tx, customerID int64, addresses []repository.AddressRecord) error {
	const q = `INSERT INTO addresses (customer_id, street, city_id, zip_code) VALUES ($1, $2, $3, $4)`
	for _, a := range addresses {
		if _, err := tx.ExecContext(ctx, q, customerID, a.Street, a.CityID, a.ZipCode); err != nil {
			return err
		}
	}
	return nil
}

// FindByID fetches a customer and its addresses.
func (r *CustomerPostgres) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	row := r.db.QueryRowContext(ctx, customerSelect+` WHERE c.id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, translate(err, nil)
	}
	customers := []model.Customer{c}
	if err := attachAddresses(ctx, r.db, customers); err != nil {
		return nil, err
	}
	return &customers[0], nil
}

// List returns a filtered page of customers, newest first, and the total number of matches.
func (r *CustomerPostgres) List(ctx context.Context, f repository.CustomerFilter, pq repository.PageQuery) (*repository.PageResult[model.Customer], error) {
	where, args := customerWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers c`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	q := customerSelect + where + fmt.Sprintf(` ORDER BY c.created_at DESC, c.id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	items, err := r.queryCustomers(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Customer]{Items: items, Total: total}, nil
}

// ListAll returns every matching customer ordered by id.
func (r *CustomerPostgres) ListAll(ctx context.Context, f repository.CustomerFilter) ([]model.Customer, error) {
	where, args := customerWhere(f)
	return r.queryCustomers(ctx, customerSelect+where+` ORDER BY c.id`, args...)
}

func (r *CustomerPostgres) queryCustomers(ctx context.Context, q string, args ...any) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachAddresses(ctx, r.db, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a customer by ID; addresses are removed by the ON DELETE CASCADE foreign key.
func (r *CustomerPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	return expectAffected(res)
}

// Stats counts all customers and, per country, the distinct customers having an address there.
func (r *CustomerPostgres) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{CustomersByCountry: make([]model.CountryCount, 0)}
	const totals = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT EXISTS (SELECT 1 FROM addresses a WHERE a.customer_id = c.id))
		FROM customers c
	`
	if err := r.db.QueryRowContext(ctx, totals).Scan(&stats.TotalCustomers, &stats.CustomersWithoutAddress); err != nil {
		return nil, err
	}

	const q = `
		SELECT co.id, co.name, COUNT(DISTINCT a.customer_id)
		FROM addresses a
		JOIN cities ci ON ci.id = a.city_id
		JOIN states s ON s.id = ci.state_id
		JOIN countries co ON co.id = s.country_id
		GROUP BY co.id, co.name
		ORDER BY 3 DESC, co.name
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cc model.CountryCount
		if err := rows.Scan(&cc.CountryID, &cc.Country, &cc.Count); err != nil {
			return nil, err
		}
		stats.CustomersByCountry = append(stats.CustomersByCountry, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func scanCustomer(sc scanner) (model.Customer, error) {
	var c model.Customer
	err := sc.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	c.Addresses = make([]model.Address, 0)
	return c, err
}

// attachAddresses loads the addresses of all given customers with a single query.
func attachAddresses(ctx context.Context, q querier, customers []model.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	index := make(map[int64]int, len(customers))
	ids := make([]any, len(customers))
	for i, c := range customers {
		index[c.ID] = i
		ids[i] = c.ID
	}

	query := addressSelect + ` WHERE a.customer_id IN (` + placeholders(1, len(ids)) + `) ORDER BY a.id`
	addresses, err := queryAddresses(ctx, q, query, ids...)
	if err != nil {
		return err
	}
	for _, a := range addresses {
		if i, ok := index[a.CustomerID]; ok {
			customers[i].Addresses = append(customers[i].Addresses, a)
		}
	}
	return nil
}

// customerWhere renders the WHERE clause and positional arguments for f.
// Country and state criteria are independent EXISTS probes over the customer's addresses.
func customerWhere(f repository.CustomerFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		conds = append(conds, fmt.Sprintf("(c.name ILIKE $%d OR c.email ILIKE $%d)", len(args), len(args)))
	}
	if f.CountryID != nil {
		args = append(args, *f.CountryID)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM addresses fa
			JOIN cities fc ON fc.id = fa.city_id
			JOIN states fs ON fs.id = fc.state_id
			WHERE fa.customer_id = c.id AND fs.country_id = $%d)`, len(args)))
	}
	if f.StateID != nil {
		args = append(args, *f.StateID)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM addresses fa
			JOIN cities fc ON fc.id = fa.city_id
			WHERE fa.customer_id = c.id AND fc.state_id = $%d)`, len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
