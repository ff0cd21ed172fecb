package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pyroxy"
	main "github.com/fwojciec/pyroxy/cmd/pyroxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCmd(t *testing.T) {
	t.Parallel()

	t.Run("filters the mirror's index page", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "filter", "Flask"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, flaskFiltered, stdout.String())
		assert.Contains(t, stderr.String(), "removed 2 of 3 links (external_download, home_page, unknown)")
	})

	t.Run("filters a given file", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "")
		file := filepath.Join(t.TempDir(), "index.html")
		require.NoError(t, os.WriteFile(file, []byte(flaskIndex), 0644))
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "filter", "requests", file}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Flask-1.0.zip")
		assert.NotContains(t, stdout.String(), "Flask-1.0.tar.gz")
		assert.Contains(t, stderr.String(), "removed 2 of 3 links")
	})

	t.Run("prints whitelisted pages unchanged", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "")
		file := filepath.Join(t.TempDir(), "index.html")
		require.NoError(t, os.WriteFile(file, []byte(flaskIndex), 0644))
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "filter", "Django", file}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, flaskIndex, stdout.String())
		assert.Contains(t, stderr.String(), "whitelisted")
	})

	t.Run("returns ENOTFOUND for packages missing from the mirror", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "")
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "filter", "nope"}, &bytes.Buffer{}, stderr)

		assert.Equal(t, pyroxy.ENOTFOUND, pyroxy.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints options resolved for a package", func(t *testing.T) {
		t.Parallel()

		configPath, root := newMirror(t, "")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "config", "Flask"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "allowed_extensions = tar.gz\n"+
			"pypi_web_path = "+root+"\n"+
			"whitelisted_packages = django\n", stdout.String())
	})

	t.Run("prints global options and package sections", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "config"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "allowed_extensions = zip\n")
		assert.Contains(t, stdout.String(), "packages:\n  flask\n")
	})

	t.Run("notes whitelisted packages", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "config", "Django"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Django is whitelisted")
	})
}

func TestServeCmd(t *testing.T) {
	t.Parallel()

	t.Run("starts and stops with the context", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "host = 127.0.0.1\nport = 0\nmetrics_addr = 127.0.0.1:0\nrate_limit = 10\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(ctx, []string{"--config", configPath, "serve"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "serving mirror")
		assert.Contains(t, stderr.String(), "serving metrics")
		assert.Contains(t, stderr.String(), "mirror stopped")
	})

	t.Run("requires pypi_web_path", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "pyroxy.ini")
		require.NoError(t, os.WriteFile(configPath, []byte("[main]\nport = 0\n"), 0644))

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "serve"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, pyroxy.EINVALID, pyroxy.ErrorCode(err))
	})

	t.Run("rejects invalid ports", func(t *testing.T) {
		t.Parallel()

		configPath, _ := newMirror(t, "port = http\n")

		err := main.NewMain().Run(context.Background(), []string{"--config", configPath, "serve"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, pyroxy.EINVALID, pyroxy.ErrorCode(err))
	})
}
