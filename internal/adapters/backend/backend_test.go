package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrack/internal/config"
)

func TestOpen(t *testing.T) {
	for _, b := range []config.Backend{config.BackendSQLite, config.BackendFile, config.BackendMemory} {
		t.Run(string(b), func(t *testing.T) {
			cfg := config.Default()
			cfg.Home = t.TempDir()
			cfg.Backend = b

			kv, err := Open(cfg)
			require.NoError(t, err)
			defer kv.Close()

			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, "roadmap", "{}"))
			v, ok, err := kv.Get(ctx, "roadmap")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "{}", v)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "bolt"

	_, err := Open(cfg)
	assert.Error(t, err)
}
