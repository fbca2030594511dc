package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `
log:
  level: debug
search:
  mode: CAR
  park_and_ride: true
routing:
  heuristic: trivial
  workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "navigatorx.yaml"), []byte(content), 0o644))

	cfg, err := Load("navigatorx", dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, pkg.CAR, cfg.Search.Mode)
	assert.True(t, cfg.Search.CarParkingAllowed())
	assert.Equal(t, routing.TRIVIAL, cfg.Routing.Heuristic)
	assert.Equal(t, 2, cfg.Routing.NumWorkers)

	_, err = Load("does-not-exist", t.TempDir())
	assert.Error(t, err)
}
