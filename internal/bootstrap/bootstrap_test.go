package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadtrack/internal/config"
	"roadtrack/internal/domain"
)

func TestStart_PersistsAcrossRuntimes(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	rt, err := Start(ctx, Overrides{Home: home, Backend: "file", LogToFile: true})
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, rt.Config.Backend)

	_, err = rt.State.Install(ctx, &domain.Roadmap{Title: "Go", Topics: []domain.Topic{{ID: "t1"}}})
	require.NoError(t, err)
	require.NoError(t, rt.Close())

	_, err = os.Stat(filepath.Join(home, "store", "roadmap.json"))
	assert.NoError(t, err)

	rt, err = Start(ctx, Overrides{Home: home, Backend: "file"})
	require.NoError(t, err)
	defer rt.Close()

	assert.True(t, rt.State.HasRoadmap())
	assert.Equal(t, domain.DefaultRecord(), rt.State.Record("t1"))
}

func TestStart_ExportDirOverride(t *testing.T) {
	rt, err := Start(context.Background(), Overrides{Home: t.TempDir(), Backend: "memory", ExportDir: "/tmp/exports"})
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, "/tmp/exports", rt.Config.ExportDir)
}

func TestStart_UnknownBackend(t *testing.T) {
	_, err := Start(context.Background(), Overrides{Home: t.TempDir(), Backend: "etcd"})
	assert.Error(t, err)
}
