package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sheetcast/pkg/cli/config"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	t.Run("notification presets", func(t *testing.T) {
		path := writeFile(t, "sheetcast.toml", `
[notification]
channel = "C0123456789"
max_rows = 10
include_metadata = false
`)
		cfg, err := config.LoadAppConfiguration(path)
		gt.NoError(t, err).Required()

		opts := cfg.NotifyOptions()
		gt.Value(t, opts.Channel).Equal("C0123456789")
		gt.Value(t, opts.MaxRows).Equal(10)
		gt.Bool(t, opts.IncludeMetadata).False()
	})

	t.Run("defaults when the section is missing", func(t *testing.T) {
		path := writeFile(t, "empty.toml", "")
		cfg, err := config.LoadAppConfiguration(path)
		gt.NoError(t, err).Required()

		opts := cfg.NotifyOptions()
		gt.Value(t, opts.Channel).Equal("")
		gt.Value(t, opts.MaxRows).Equal(model.DefaultNotifyMaxRows)
		gt.Bool(t, opts.IncludeMetadata).True()
	})

	t.Run("negative max_rows", func(t *testing.T) {
		path := writeFile(t, "bad.toml", "[notification]\nmax_rows = -1\n")
		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("max_rows beyond the Slack block limit", func(t *testing.T) {
		path := writeFile(t, "large.toml", "[notification]\nmax_rows = 44\n")
		_, err := config.LoadAppConfiguration(path)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("max_rows at the Slack block limit", func(t *testing.T) {
		path := writeFile(t, "limit.toml", "[notification]\nmax_rows = 43\n")
		cfg, err := config.LoadAppConfiguration(path)
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.NotifyOptions().MaxRows).Equal(model.MaxNotifyRows)
	})

	t.Run("broken TOML", func(t *testing.T) {
		path := writeFile(t, "broken.toml", "[notification\n")
		_, err := config.LoadAppConfiguration(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Value(t, err).NotNil()
	})
}

func TestFileConfigureWithoutPath(t *testing.T) {
	var f config.File
	cfg, err := f.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.NotifyOptions().MaxRows).Equal(model.DefaultNotifyMaxRows)
}
