package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, first_name, last_name, password_hash, created_at`

func scanUser(sc scanner) (*model.User, error) {
	var u model.User
	if err := sc.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (username, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRowContext(ctx, q, u.Username, u.FirstName, u.LastName, u.PasswordHash))
	if err != nil {
		return nil, translateWrite(err)
	}
	return out, nil
}

func (r *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	out, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, translate(err, nil)
	}
	return out, nil
}

func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	out, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return out, nil
}
