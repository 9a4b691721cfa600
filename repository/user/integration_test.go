//go:build integration
// +build integration

package user_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	userrepo "github.com/muhammadheryan/contacts/repository/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func readMigration(t *testing.T, dialect string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "migrations", dialect, "001_create_users.sql"))
	require.NoError(t, err)
	return string(b)
}

func startContainer(t *testing.T, ctx context.Context, req tc.ContainerRequest, port string) (host string, mapped string) {
	t.Helper()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Terminate(context.Background())
	})

	host, err = c.Host(ctx)
	require.NoError(t, err)
	p, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, p.Port()
}

func TestMySQLRepository(t *testing.T) {
	ctx := context.Background()
	host, port := startContainer(t, ctx, tc.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret",
			"MYSQL_DATABASE":      "contacts",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(3 * time.Minute),
	}, "3306/tcp")

	// session time zone is +07:00 so server-local and UTC clocks differ
	dsn := fmt.Sprintf("root:secret@tcp(%s:%s)/contacts?parseTime=true&loc=UTC&charset=utf8mb4&time_zone=%%27%%2B07%%3A00%%27", host, port)
	var db *sqlx.DB
	var err error
	require.Eventually(t, func() bool {
		db, err = sqlx.Connect("mysql", dsn)
		return err == nil
	}, 30*time.Second, time.Second)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, readMigration(t, "mysql"))
	require.NoError(t, err)

	runRepositoryContract(t, userrepo.NewUserRepository(db), func() {
		_, err := db.ExecContext(ctx, "TRUNCATE TABLE users")
		require.NoError(t, err)
	})
}

func TestPostgresRepository(t *testing.T) {
	ctx := context.Background()
	host, port := startContainer(t, ctx, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "secret",
			"POSTGRES_DB":       "contacts",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2 * time.Minute),
	}, "5432/tcp")

	pool, err := pgxpool.New(ctx, fmt.Sprintf("postgres://postgres:secret@%s:%s/contacts?sslmode=disable", host, port))
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.Eventually(t, func() bool { return pool.Ping(ctx) == nil }, 30*time.Second, time.Second)

	_, err = pool.Exec(ctx, readMigration(t, "postgres"))
	require.NoError(t, err)

	runRepositoryContract(t, userrepo.NewPostgresRepository(pool), func() {
		_, err := pool.Exec(ctx, "TRUNCATE TABLE users RESTART IDENTITY")
		require.NoError(t, err)
	})
}

func str(s string) *string { return &s }

func newEntity(name, email string) *model.UserEntity {
	return &model.UserEntity{
		Name:    name,
		Email:   email,
		Phone:   str("1-770-736-8031"),
		Company: str("Romaguera-Crona"),
		City:    str("Gwenborough"),
		GeoLat:  str("-37.3159"),
		GeoLng:  str("0"),
	}
}

// runRepositoryContract exercises behaviour both adapters must share.
func runRepositoryContract(t *testing.T, repo userrepo.UserRepository, reset func()) {
	ctx := context.Background()

	t.Run("success: ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})

	t.Run("success: create and read back", func(t *testing.T) {
		reset()
		created, err := repo.Create(ctx, newEntity("Leanne Graham", "sincere@april.biz"))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Nil(t, created.Street)
		assert.Equal(t, "0", *created.GeoLng)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, got.Email)
		assert.Equal(t, "-37.3159", *got.GeoLat)
	})

	t.Run("error: duplicate email", func(t *testing.T) {
		reset()
		_, err := repo.Create(ctx, newEntity("A", "dup@x.com"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newEntity("B", "dup@x.com"))
		assert.ErrorIs(t, err, userrepo.ErrDuplicateEmail)
	})

	t.Run("success: email uniqueness is case-sensitive", func(t *testing.T) {
		reset()
		_, err := repo.Create(ctx, newEntity("A", "a@x.com"))
		require.NoError(t, err)

		upper, err := repo.Create(ctx, newEntity("B", "A@x.com"))
		require.NoError(t, err)
		assert.Equal(t, "A@x.com", upper.Email)

		_, err = repo.Create(ctx, newEntity("C", "A@x.com"))
		assert.ErrorIs(t, err, userrepo.ErrDuplicateEmail)
	})

	t.Run("success: timestamps are stored in UTC", func(t *testing.T) {
		reset()
		created, err := repo.Create(ctx, newEntity("A", "a@x.com"))
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), created.CreatedAt.UTC(), time.Minute)

		updated, err := repo.Update(ctx, created.ID, model.UserPatch{{Column: constant.ColumnName, Value: str("B")}})
		require.NoError(t, err)
		require.NotNil(t, updated.UpdatedAt)
		assert.WithinDuration(t, time.Now().UTC(), updated.UpdatedAt.UTC(), time.Minute)
	})

	t.Run("success: list newest first", func(t *testing.T) {
		reset()
		first, err := repo.Create(ctx, newEntity("First", "first@x.com"))
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
		second, err := repo.Create(ctx, newEntity("Second", "second@x.com"))
		require.NoError(t, err)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, second.ID, users[0].ID)
		assert.Equal(t, first.ID, users[1].ID)
	})

	t.Run("success: empty list", func(t *testing.T) {
		reset()
		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Len(t, users, 0)
	})

	t.Run("success: search is case-insensitive substring", func(t *testing.T) {
		reset()
		_, err := repo.Create(ctx, newEntity("Leanne Graham", "sincere@april.biz"))
		require.NoError(t, err)
		other := newEntity("Ervin Howell", "shanna@melissa.tv")
		other.Company = str("Deckow-Crist")
		_, err = repo.Create(ctx, other)
		require.NoError(t, err)

		users, err := repo.Search(ctx, "CRONA")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Leanne Graham", users[0].Name)

		users, err = repo.Search(ctx, "%")
		require.NoError(t, err)
		assert.Len(t, users, 0)

		users, err = repo.Search(ctx, "no-such-user")
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Len(t, users, 0)
	})

	t.Run("success: update applies only the patch", func(t *testing.T) {
		reset()
		created, err := repo.Create(ctx, newEntity("Leanne Graham", "sincere@april.biz"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, model.UserPatch{
			{Column: constant.ColumnName, Value: str("Ervin Howell")},
			{Column: constant.ColumnCompany, Value: nil},
		})
		require.NoError(t, err)
		assert.Equal(t, "Ervin Howell", updated.Name)
		assert.Nil(t, updated.Company)
		assert.Equal(t, "Gwenborough", *updated.City)
		assert.Equal(t, "sincere@april.biz", updated.Email)
		require.NotNil(t, updated.UpdatedAt)
		assert.False(t, updated.UpdatedAt.Before(created.CreatedAt))
	})

	t.Run("error: update unknown id", func(t *testing.T) {
		reset()
		_, err := repo.Update(ctx, 999, model.UserPatch{{Column: constant.ColumnName, Value: str("Ghost")}})
		assert.ErrorIs(t, err, userrepo.ErrNotFound)
	})

	t.Run("error: update to a taken email", func(t *testing.T) {
		reset()
		_, err := repo.Create(ctx, newEntity("A", "a@x.com"))
		require.NoError(t, err)
		b, err := repo.Create(ctx, newEntity("B", "b@x.com"))
		require.NoError(t, err)

		_, err = repo.Update(ctx, b.ID, model.UserPatch{{Column: constant.ColumnEmail, Value: str("a@x.com")}})
		assert.ErrorIs(t, err, userrepo.ErrDuplicateEmail)
	})

	t.Run("success: delete then not found", func(t *testing.T) {
		reset()
		created, err := repo.Create(ctx, newEntity("A", "a@x.com"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, userrepo.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), userrepo.ErrNotFound)
	})
}
