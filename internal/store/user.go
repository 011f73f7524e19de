package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/recipebook/apiserver/types"
)

const pqUniqueViolation = "23505"

// UserRepository handles persistence for user credentials.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `
		SELECT id, username, password, name, last_name
		FROM recipe.user_credentials
		WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	const query = `
		SELECT id, username, password, name, last_name
		FROM recipe.user_credentials
		WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

// Create inserts a new user. A taken username yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM recipe.user_credentials WHERE username = $1`,
		user.Username,
	).Scan(&existing)
	if err == nil {
		return types.User{}, ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return types.User{}, err
	}

	const insert = `
		INSERT INTO recipe.user_credentials (username, password, name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		insert,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.LastName,
	).Scan(&user.ID); err != nil {
		return types.User{}, mapConstraint(err)
	}

	if err := tx.Commit(); err != nil {
		return types.User{}, mapConstraint(err)
	}
	return user, nil
}

// UpdateProfile overwrites username, name, and last name. A username owned by
// a different user yields ErrConflict. The check, update, and re-read run in
// one transaction.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, username, name string, lastName *string) (types.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var owner int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM recipe.user_credentials WHERE username = $1`,
		username,
	).Scan(&owner)
	if err == nil && owner != id {
		return types.User{}, ErrConflict
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return types.User{}, err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE recipe.user_credentials SET name = $1, username = $2, last_name = $3 WHERE id = $4`,
		name, username, lastName, id,
	)
	if err != nil {
		return types.User{}, mapConstraint(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, err
	}
	if affected == 0 {
		return types.User{}, ErrNotFound
	}

	user, err := scanUser(tx.QueryRowContext(ctx,
		`SELECT id, username, password, name, last_name FROM recipe.user_credentials WHERE id = $1`,
		id,
	))
	if err != nil {
		return types.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// UpdatePassword overwrites the stored hash unconditionally.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recipe.user_credentials SET password = $1 WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user and any dependent favorites and shopping list rows
// in one transaction. The schema also cascades, so the explicit deletes keep
// the behavior even on databases migrated without the foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe.favorites WHERE user_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe.shopping_list WHERE user_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM recipe.user_credentials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Name,
		&user.LastName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func mapConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrConflict
	}
	return err
}
