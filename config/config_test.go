package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"halma/game"
	"halma/player"
	"halma/searcher"
)

func useConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestInitConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		useConfigHome(t)

		cfg, err := InitConfig()

		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), *cfg)
		require.Equal(t, searcher.DefaultConfig(), cfg.SideA.Search())
	})

	t.Run("saved config is found again", func(t *testing.T) {
		dir := useConfigHome(t)
		cfg := DefaultConfig()
		cfg.SideB.Depth = 3
		cfg.SideB.Weights.Vulnerable = -5
		cfg.MaxTurns = 300

		path, err := cfg.Save()
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "halma", "config.yaml"), path)

		loaded, err := InitConfig()
		require.NoError(t, err)
		require.Equal(t, cfg, *loaded)
	})

	t.Run("partial files keep the defaults", func(t *testing.T) {
		dir := useConfigHome(t)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "halma"), 0755))
		yml := "side_a:\n  kind: random\nmax_turns: 50\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "halma", "config.yaml"), []byte(yml), 0644))

		cfg, err := InitConfig()

		require.NoError(t, err)
		require.Equal(t, KindRandom, cfg.SideA.Kind)
		require.Equal(t, "bot-a", cfg.SideA.Name)
		require.Equal(t, 50, cfg.MaxTurns)
		require.Equal(t, DefaultBot("bot-b"), cfg.SideB)
		require.Equal(t, game.StartLayout, cfg.StartingLayout)
	})

	t.Run("invalid files are rejected", func(t *testing.T) {
		dir := useConfigHome(t)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "halma"), 0755))
		yml := "side_b:\n  depth: 12\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "halma", "config.yaml"), []byte(yml), 0644))

		_, err := InitConfig()

		var invalid *InvalidConfig
		require.True(t, errors.As(err, &invalid))
		require.Contains(t, err.Error(), "side_b")
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("side_a: [\n"), 0644))

		_, err := Load(path)

		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(c *Config){
		"negative depth":      func(c *Config) { c.SideA.Depth = -1 },
		"bot without depth":   func(c *Config) { c.SideB.Depth = 0 },
		"zero max moves":      func(c *Config) { c.SideB.MaxMoves = 0 },
		"unknown kind":        func(c *Config) { c.SideA.Kind = "human" },
		"remote without url":  func(c *Config) { c.SideA.Kind = KindRemote },
		"zero max turns":      func(c *Config) { c.MaxTurns = 0 },
		"bad starting layout": func(c *Config) { c.StartingLayout = "16" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			err := cfg.Validate()
			var invalid *InvalidConfig
			require.True(t, errors.As(err, &invalid), "Got %v", err)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("depth only matters for bots", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SideA.Kind = KindRandom
		cfg.SideA.Depth = 0
		require.NoError(t, cfg.Validate())
	})
}

func TestNewPlayer(t *testing.T) {
	b := DefaultBot("x")
	require.IsType(t, &player.Bot{}, b.NewPlayer())
	require.Equal(t, b.Search(), b.NewPlayer().(*player.Bot).Config())

	b.Kind = KindRandom
	require.IsType(t, &player.RandomPlayer{}, b.NewPlayer())

	b.Kind, b.URL = KindRemote, "http://localhost:8080"
	require.IsType(t, &player.Remote{}, b.NewPlayer())
	require.Equal(t, "x", b.NewPlayer().Name())
}
