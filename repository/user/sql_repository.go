package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/contacts/model"
	txrepo "github.com/muhammadheryan/contacts/repository/tx"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY; email is the only unique key on users.
const mysqlDuplicateEntry = 1062

// SQL is the generic SQL adapter (MySQL dialect) built on sqlx.
type SQL struct {
	conn *sqlx.DB
	tx   txrepo.TxRepository
}

var _ UserRepository = (*SQL)(nil)

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn, tx: txrepo.NewTxRepository(conn)}
}

const (
	listUsersQuery  = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`
	getUserQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	deleteUserQuery = `DELETE FROM users WHERE id = ?`
	insertUserQuery = `INSERT INTO users (name, email, phone, company, street, city, zip, geo_lat, geo_lng, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(3), UTC_TIMESTAMP(3))`
	searchUsersQuery = `SELECT ` + userColumns + ` FROM users
WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(company) LIKE ?
ORDER BY created_at DESC, id DESC`
)

func (s *SQL) List(ctx context.Context) ([]model.UserEntity, error) {
	users := make([]model.UserEntity, 0)
	if err := s.conn.SelectContext(ctx, &users, listUsersQuery); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *SQL) Search(ctx context.Context, fragment string) ([]model.UserEntity, error) {
	pattern := likePattern(fragment)
	users := make([]model.UserEntity, 0)
	if err := s.conn.SelectContext(ctx, &users, searchUsersQuery, pattern, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.UserEntity, error) {
	return getByID(ctx, s.conn, id)
}

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery,
		data.Name, data.Email, data.Phone, data.Company,
		data.Street, data.City, data.Zip, data.GeoLat, data.GeoLng)
	if err != nil {
		return nil, translateMySQLError("insert user", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return getByID(ctx, s.conn, uint64(lastID))
}

// Update applies patch and reads the row back inside one transaction.
func (s *SQL) Update(ctx context.Context, id uint64, patch model.UserPatch) (*model.UserEntity, error) {
	if err := checkPatch(patch); err != nil {
		return nil, err
	}

	query, args := mysqlUpdateQuery(id, patch)

	var entity *model.UserEntity
	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return translateMySQLError("update user", err)
		}
		var err error
		entity, err = getByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// mysqlUpdateQuery builds the UPDATE for a checked patch. Timestamps are
// written in UTC whatever the session time zone is.
func mysqlUpdateQuery(id uint64, patch model.UserPatch) (string, []any) {
	sets := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+1)
	for _, cv := range patch {
		sets = append(sets, cv.Column+" = ?")
		args = append(args, cv.Value)
	}
	sets = append(sets, "updated_at = UTC_TIMESTAMP(3)")
	args = append(args, id)
	return "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?", args
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	result, err := s.conn.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func getByID(ctx context.Context, q sqlx.QueryerContext, id uint64) (*model.UserEntity, error) {
	var entity model.UserEntity
	if err := q.QueryRowxContext(ctx, getUserQuery, id).StructScan(&entity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &entity, nil
}

func translateMySQLError(op string, err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return ErrDuplicateEmail
	}
	return fmt.Errorf("%s: %w", op, err)
}
