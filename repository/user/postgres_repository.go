package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/muhammadheryan/contacts/model"
)

const pgUniqueViolation = "23505"

// Postgres is the managed-backend adapter (Supabase or any hosted Postgres) built on pgxpool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ UserRepository = (*Postgres)(nil)

func NewPostgresRepository(pool *pgxpool.Pool) UserRepository {
	return &Postgres{pool: pool}
}

const (
	pgListUsersQuery  = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`
	pgGetUserQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	pgDeleteUserQuery = `DELETE FROM users WHERE id = $1`
	pgInsertUserQuery = `INSERT INTO users (name, email, phone, company, street, city, zip, geo_lat, geo_lng, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
RETURNING ` + userColumns
	pgSearchUsersQuery = `SELECT ` + userColumns + ` FROM users
WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1 OR company ILIKE $1
ORDER BY created_at DESC, id DESC`
)

func (p *Postgres) List(ctx context.Context) ([]model.UserEntity, error) {
	rows, err := p.pool.Query(ctx, pgListUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.UserEntity])
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (p *Postgres) Search(ctx context.Context, fragment string) ([]model.UserEntity, error) {
	rows, err := p.pool.Query(ctx, pgSearchUsersQuery, likePattern(fragment))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.UserEntity])
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (p *Postgres) GetByID(ctx context.Context, id uint64) (*model.UserEntity, error) {
	rows, err := p.pool.Query(ctx, pgGetUserQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return collectOne("get user", rows)
}

func (p *Postgres) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	rows, err := p.pool.Query(ctx, pgInsertUserQuery,
		data.Name, data.Email, data.Phone, data.Company,
		data.Street, data.City, data.Zip, data.GeoLat, data.GeoLng)
	if err != nil {
		return nil, translatePgError("insert user", err)
	}
	return collectOne("insert user", rows)
}

func (p *Postgres) Update(ctx context.Context, id uint64, patch model.UserPatch) (*model.UserEntity, error) {
	if err := checkPatch(patch); err != nil {
		return nil, err
	}

	sets := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+1)
	for i, cv := range patch {
		sets = append(sets, cv.Column+" = $"+strconv.Itoa(i+1))
		args = append(args, cv.Value)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + userColumns

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError("update user", err)
	}
	return collectOne("update user", rows)
}

func (p *Postgres) Delete(ctx context.Context, id uint64) error {
	tag, err := p.pool.Exec(ctx, pgDeleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// collectOne reads exactly one row. Errors raised while executing the statement (constraint
// violations included) only surface here, so they are translated as well.
func collectOne(op string, rows pgx.Rows) (*model.UserEntity, error) {
	entity, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.UserEntity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, translatePgError(op, err)
	}
	return &entity, nil
}

func translatePgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return fmt.Errorf("%s: %w", op, err)
}
