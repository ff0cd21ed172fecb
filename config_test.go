package pyroxy_test

import (
	"testing"

	"github.com/fwojciec/pyroxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Lookup(t *testing.T) {
	t.Parallel()

	cfg := pyroxy.NewConfig(
		map[string]string{"allowed_extensions": "zip", "pypi_web_path": "/srv/pypi"},
		map[string]map[string]string{"Flask": {"allowed_extensions": "tar.gz"}},
	)

	t.Run("package section wins", func(t *testing.T) {
		t.Parallel()

		v, ok := cfg.Lookup("flask", "allowed_extensions")
		require.True(t, ok)
		assert.Equal(t, "tar.gz", v)
	})

	t.Run("package names are case-insensitive", func(t *testing.T) {
		t.Parallel()

		v, ok := cfg.Lookup("FLASK", "allowed_extensions")
		require.True(t, ok)
		assert.Equal(t, "tar.gz", v)
	})

	t.Run("falls back to global options", func(t *testing.T) {
		t.Parallel()

		v, ok := cfg.Lookup("flask", "pypi_web_path")
		require.True(t, ok)
		assert.Equal(t, "/srv/pypi", v)

		v, ok = cfg.Lookup("django", "allowed_extensions")
		require.True(t, ok)
		assert.Equal(t, "zip", v)
	})

	t.Run("reports undefined options", func(t *testing.T) {
		t.Parallel()

		_, ok := cfg.Lookup("flask", "whitelisted_packages")
		assert.False(t, ok)
	})
}

func TestConfig_LookupList(t *testing.T) {
	t.Parallel()

	t.Run("splits and trims entries once", func(t *testing.T) {
		t.Parallel()

		cfg := pyroxy.NewConfig(map[string]string{"allowed_extensions": " tar.gz ,ZIP,, whl"}, nil)

		list, ok := cfg.LookupList("pkg", "allowed_extensions")
		require.True(t, ok)
		assert.Equal(t, []string{"tar.gz", "ZIP", "whl"}, list)
	})

	t.Run("distinguishes empty from undefined", func(t *testing.T) {
		t.Parallel()

		cfg := pyroxy.NewConfig(nil, map[string]map[string]string{"flask": {"allowed_extensions": ""}})

		list, ok := cfg.LookupList("flask", "allowed_extensions")
		require.True(t, ok)
		assert.Empty(t, list)

		_, ok = cfg.LookupList("django", "allowed_extensions")
		assert.False(t, ok)
	})
}

func TestConfig_List(t *testing.T) {
	t.Parallel()

	cfg := pyroxy.NewConfig(map[string]string{"whitelisted_packages": "Django, Pylons"}, nil)

	assert.Equal(t, []string{"django", "pylons"}, cfg.List("whitelisted_packages"))
	assert.Nil(t, cfg.List("allowed_extensions"))
}

func TestConfig_IsWhitelisted(t *testing.T) {
	t.Parallel()

	cfg := pyroxy.NewConfig(map[string]string{"whitelisted_packages": "django"}, nil)

	assert.True(t, cfg.IsWhitelisted("django"))
	assert.True(t, cfg.IsWhitelisted("Django"))
	assert.True(t, cfg.IsWhitelisted("DJANGO"))
	assert.False(t, cfg.IsWhitelisted("flask"))
	assert.False(t, pyroxy.NewConfig(nil, nil).IsWhitelisted("django"))
}

func TestConfig_Bool(t *testing.T) {
	t.Parallel()

	t.Run("coerces true values", func(t *testing.T) {
		t.Parallel()

		for _, v := range []string{"TRuE", "YES", "y", "1", " on "} {
			cfg := pyroxy.NewConfig(map[string]string{"debug": v}, nil)
			b, ok, err := cfg.Bool("debug")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.True(t, b, v)
		}
	})

	t.Run("coerces false values", func(t *testing.T) {
		t.Parallel()

		for _, v := range []string{"FALse", "NO", "n", "0", "off"} {
			cfg := pyroxy.NewConfig(map[string]string{"debug": v}, nil)
			b, ok, err := cfg.Bool("debug")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.False(t, b, v)
		}
	})

	t.Run("rejects other values", func(t *testing.T) {
		t.Parallel()

		for _, v := range []string{"nottrue", "ZOMG", "5", ""} {
			cfg := pyroxy.NewConfig(map[string]string{"debug": v}, nil)
			_, _, err := cfg.Bool("debug")
			require.Error(t, err, v)
			assert.Equal(t, pyroxy.EINVALID, pyroxy.ErrorCode(err))
		}
	})

	t.Run("reports undefined option", func(t *testing.T) {
		t.Parallel()

		_, ok, err := pyroxy.NewConfig(nil, nil).Bool("debug")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestConfig_Numbers(t *testing.T) {
	t.Parallel()

	cfg := pyroxy.NewConfig(map[string]string{"port": "5000", "rate_limit": "2.5", "rate_burst": "many"}, nil)

	port, ok, err := cfg.Int("port")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5000, port)

	rate, ok, err := cfg.Float("rate_limit")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 2.5, rate, 0.0001)

	_, _, err = cfg.Int("rate_burst")
	assert.Equal(t, pyroxy.EINVALID, pyroxy.ErrorCode(err))

	_, ok, err = cfg.Int("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfig_Resolved(t *testing.T) {
	t.Parallel()

	cfg := pyroxy.NewConfig(
		map[string]string{"allowed_extensions": "zip", "host": "localhost"},
		map[string]map[string]string{"flask": {"allowed_extensions": "tar.gz"}},
	)

	assert.Equal(t, map[string]string{"allowed_extensions": "tar.gz", "host": "localhost"}, cfg.Resolved("Flask"))
	assert.Equal(t, map[string]string{"allowed_extensions": "zip", "host": "localhost"}, cfg.Resolved("django"))
	assert.Equal(t, []string{"flask"}, cfg.Packages())
}

func TestNewConfig_CopiesInput(t *testing.T) {
	t.Parallel()

	global := map[string]string{"allowed_extensions": "zip"}
	cfg := pyroxy.NewConfig(global, nil)
	global["allowed_extensions"] = "exe"

	v, _ := cfg.Lookup("pkg", "allowed_extensions")
	assert.Equal(t, "zip", v)
}
