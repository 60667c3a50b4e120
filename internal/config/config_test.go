package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fscs/prototool/internal/config"
	"github.com/fscs/prototool/pkg/attendance"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("gen", pflag.ContinueOnError)
	fs.String("endpoint-url", "https://fscs.hhu.de/", "")
	fs.String("lang", "de", "")
	fs.String("attendance-policy", "nobody", "")
	return fs
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("EDITOR", "vim")

		cfg, err := config.Load(nil)
		require.NoError(t, err)

		want := config.Defaults()
		want.Editor = "vim"
		assert.Equal(t, want, cfg)
	})

	t.Run("Files Merge In Order", func(t *testing.T) {
		dir := t.TempDir()
		user := writeFile(t, dir, "user.yaml", "lang: en\nrole: Vorstand\n")
		project := writeFile(t, dir, "project.yaml", "role: Rat\ncontent_dir: site/content\n")

		cfg, err := config.Load(nil, user, project, filepath.Join(dir, "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Lang)
		assert.Equal(t, "Rat", cfg.Role)
		assert.Equal(t, "site/content", cfg.ContentDir)
	})

	t.Run("Env Over File", func(t *testing.T) {
		dir := t.TempDir()
		file := writeFile(t, dir, "config.yaml", "lang: en\n")
		t.Setenv("PROTOTOOL_LANG", "fr")
		t.Setenv("PROTOTOOL_ATTENDANCE_POLICY", "available")

		cfg, err := config.Load(nil, file)
		require.NoError(t, err)
		assert.Equal(t, "fr", cfg.Lang)
		assert.Equal(t, attendance.PolicyAllAvailable, cfg.Policy())
	})

	t.Run("Changed Flag Over Env", func(t *testing.T) {
		t.Setenv("PROTOTOOL_LANG", "fr")
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"--lang", "en", "--endpoint-url", "http://localhost:8080/"}))

		cfg, err := config.Load(flags)
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Lang)
		assert.Equal(t, "http://localhost:8080/", cfg.EndpointURL)
	})

	t.Run("Unchanged Flag Does Not Override", func(t *testing.T) {
		dir := t.TempDir()
		file := writeFile(t, dir, "config.yaml", "attendance_policy: available\n")
		flags := newFlags()
		require.NoError(t, flags.Parse(nil))

		cfg, err := config.Load(flags, file)
		require.NoError(t, err)
		assert.Equal(t, "available", cfg.AttendancePolicy)
	})

	t.Run("Malformed File", func(t *testing.T) {
		file := writeFile(t, t.TempDir(), "config.yaml", "lang: [en\n")

		_, err := config.Load(nil, file)
		assert.Error(t, err)
	})

	t.Run("Invalid Values", func(t *testing.T) {
		file := writeFile(t, t.TempDir(), "config.yaml", "attendance_policy: everyone\n")

		_, err := config.Load(nil, file)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	base := config.Defaults()
	require.NoError(t, base.Validate())

	cases := map[string]func(*config.Config){
		"Endpoint Without Host": func(c *config.Config) { c.EndpointURL = "fscs" },
		"Empty Lang":            func(c *config.Config) { c.Lang = "" },
		"Pad Without Date":      func(c *config.Config) { c.PadURLTemplate = "https://pad.hhu.de/static" },
		"Unknown Timezone":      func(c *config.Config) { c.Timezone = "Mars/Olympus" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLocation(t *testing.T) {
	c := config.Defaults()
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	c.Timezone = "UTC"
	loc, err = c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}
