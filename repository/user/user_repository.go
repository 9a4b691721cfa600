package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
)

var (
	// ErrNotFound is returned when no users row matches the id.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write violates the unique email constraint.
	ErrDuplicateEmail = errors.New("duplicate email")
)

type UserRepository interface {
	List(ctx context.Context) ([]model.UserEntity, error)
	Search(ctx context.Context, fragment string) ([]model.UserEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.UserEntity, error)
	Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error)
	Update(ctx context.Context, id uint64, patch model.UserPatch) (*model.UserEntity, error)
	Delete(ctx context.Context, id uint64) error
	Ping(ctx context.Context) error
}

const userColumns = `id, name, email, phone, company, street, city, zip, geo_lat, geo_lng, created_at, updated_at`

// likePattern builds a lower-cased %fragment% pattern with LIKE wildcards escaped.
func likePattern(fragment string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(fragment)) + "%"
}

func checkPatch(patch model.UserPatch) error {
	for _, cv := range patch {
		if !isWritable(cv.Column) {
			return fmt.Errorf("unknown column %q", cv.Column)
		}
	}
	return nil
}

func isWritable(column string) bool {
	for _, c := range constant.WritableColumns {
		if c == column {
			return true
		}
	}
	return false
}
