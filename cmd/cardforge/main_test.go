package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cardforge/internal/config"
	"github.com/jonathan/cardforge/internal/parsing"
	"github.com/jonathan/cardforge/internal/rendering"
)

const profileDocument = `# Jane Doe - Staff Engineer

## About
I build reliable distributed systems and mentor engineers.

## Skills
- Go
- Kubernetes

## Achievements
- Cut p99 latency by 40% across the payments platform
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writePhotoFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "photo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 60, 80))))
	require.NoError(t, f.Close())
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv(config.EnvModel, "")
	configPath = ""
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"parse error", fmt.Errorf("failed: %w", &parsing.ParseError{Message: "no name"}), exitInput},
		{"layout error", fmt.Errorf("failed: %w", &rendering.LayoutError{Stage: rendering.StagePhoto, Message: "photo is missing"}), exitInput},
		{"config error", &config.Error{Message: "invalid configuration"}, exitConfig},
		{"other", errors.New("disk full"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFixture(t, dir, "cardforge.yaml", "width: 1000\nheight: 700\nmodel: llama3\nworkers: 2\n")
	badPath := writeFixture(t, dir, "bad.json", `{"page_size": "tabloid"}`)

	noEnv := func(string) (string, bool) { return "", false }

	t.Run("defaults only", func(t *testing.T) {
		cfg, err := loadSettings("", noEnv)
		require.NoError(t, err)
		assert.Equal(t, config.Defaults(), cfg)
	})

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := loadSettings(yamlPath, noEnv)
		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.Width)
		assert.Equal(t, 700, cfg.Height)
		assert.Equal(t, "llama3", cfg.Model)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "a4", cfg.PageSize)
	})

	t.Run("env over file", func(t *testing.T) {
		env := map[string]string{config.EnvModel: "mistral", config.EnvTimeout: "5s"}
		cfg, err := loadSettings(yamlPath, func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		})
		require.NoError(t, err)
		assert.Equal(t, "mistral", cfg.Model)
		assert.Equal(t, "5s", cfg.Timeout)
	})

	t.Run("invalid file value", func(t *testing.T) {
		_, err := loadSettings(badPath, noEnv)
		var configErr *config.Error
		assert.True(t, errors.As(err, &configErr))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadSettings(filepath.Join(dir, "absent.yaml"), noEnv)
		var configErr *config.Error
		assert.True(t, errors.As(err, &configErr))
	})
}
