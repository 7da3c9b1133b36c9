//go:build integration
// +build integration

package spells_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/repositories/spells"
	"github.com/KirkDiggler/bloodbond/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.StartRedisContainer(t)

	repo := spells.NewRedisRepository(&spells.RedisRepoConfig{
		Client: client,
		TTL:    time.Minute,
	})

	ctx := context.Background()

	t.Run("store and retrieve", func(t *testing.T) {
		sp := testutils.CreateTestSpell("spell_1", "damage", element.Fire, 3)

		require.NoError(t, repo.Set(ctx, "damage|fire|3", sp))

		got, err := repo.Get(ctx, "damage|fire|3")
		require.NoError(t, err)
		assert.Equal(t, sp, got)

		ttl, err := client.TTL(ctx, "spell:cache:damage|fire|3").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("miss is not found", func(t *testing.T) {
		_, err := repo.Get(ctx, "healing|moon|1")
		assert.True(t, dnderr.IsNotFound(err))
	})

	t.Run("len and clear", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "shield|sun|2", testutils.CreateTestSpell("spell_2", "shield", element.Sun, 2)))

		n, err := repo.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		require.NoError(t, repo.Clear(ctx))

		n, err = repo.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = repo.Get(ctx, "damage|fire|3")
		assert.True(t, dnderr.IsNotFound(err))
	})
}
