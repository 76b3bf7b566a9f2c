package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/config"
)

func TestNewRedisWithoutAddr(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, zap.NewNop())
	assert.Nil(t, r)
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}

func TestNewRedisPings(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	require.NotNil(t, r)
	t.Cleanup(r.Close)

	assert.NoError(t, r.Ping(context.Background()))
}
