package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadheryan/contacts/model"
	redisrepo "github.com/muhammadheryan/contacts/repository/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_NilClientIsNoop(t *testing.T) {
	repo := redisrepo.NewRepository(nil)
	ctx := context.Background()

	require.NoError(t, repo.SetUser(ctx, &model.User{ID: 1, Name: "A"}, time.Minute))

	got, err := repo.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	val, err := repo.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	assert.NoError(t, repo.DeleteUser(ctx, 1))
}
