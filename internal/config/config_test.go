package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), c)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"api_url":"https://data.example.com/api","keyring":{"backend":"file"}}`), 0o600))

	c, err := LoadFile(p)
	require.NoError(t, err)
	require.Equal(t, "https://data.example.com/api", c.APIURL)
	require.Equal(t, "info", c.LogLevel)
	require.Equal(t, "file", c.Keyring.Backend)
}

func TestLoadFileRejectsBadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{`), 0o600))

	_, err := LoadFile(p)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvAPIURL: " https://env.example.com/api "}

	c := ApplyEnv(Default(), func(k string) string { return env[k] })
	require.Equal(t, "https://env.example.com/api", c.APIURL)

	c = ApplyEnv(Default(), func(string) string { return "" })
	require.Equal(t, DefaultAPIURL, c.APIURL)
}

func TestValidateAPIURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "default", raw: DefaultAPIURL},
		{name: "https with path", raw: "https://data.example.com/api"},
		{name: "relative path", raw: "/api", wantErr: true},
		{name: "missing host", raw: "http:///api", wantErr: true},
		{name: "other scheme", raw: "ftp://data.example.com", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	t.Chdir(t.TempDir())

	want := Config{APIURL: "https://saved.example.com/api", LogLevel: "debug"}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRequestTimeout(t *testing.T) {
	d, err := Default().RequestTimeout()
	require.NoError(t, err)
	require.Zero(t, d)

	c := Default()
	c.Timeout = "45s"
	d, err = c.RequestTimeout()
	require.NoError(t, err)
	require.Equal(t, 45*time.Second, d)

	for _, bad := range []string{"soon", "-1s", "0s"} {
		c.Timeout = bad
		require.Error(t, c.Validate(), bad)
	}
}

func TestApplyEnvTimeout(t *testing.T) {
	c := ApplyEnv(Default(), func(k string) string {
		if k == EnvTimeout {
			return "5s"
		}
		return ""
	})
	require.Equal(t, "5s", c.Timeout)
}

func TestSet(t *testing.T) {
	c := Default()

	require.NoError(t, Set(&c, "api-url", "https://data.example.com/api"))
	require.NoError(t, Set(&c, "timeout", "10s"))
	require.NoError(t, Set(&c, "keyring-backend", "file"))
	require.NoError(t, Set(&c, "endpoints.login", "/v2/auth/token"))
	require.Equal(t, "https://data.example.com/api", c.APIURL)
	require.Equal(t, "10s", c.Timeout)
	require.Equal(t, "file", c.Keyring.Backend)
	require.Equal(t, "/v2/auth/token", c.Endpoints.Login)

	require.NoError(t, Set(&c, "api-url", ""))
	require.Equal(t, DefaultAPIURL, c.APIURL)

	require.Error(t, Set(&c, "api-url", "/relative"))
	require.Error(t, Set(&c, "timeout", "later"))
	require.Error(t, Set(&c, "colour", "blue"))
}

func TestSetThenSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	t.Chdir(t.TempDir())

	p, err := Path()
	require.NoError(t, err)
	c, err := LoadFile(p)
	require.NoError(t, err)
	require.NoError(t, Set(&c, "endpoints.download", "/files/archive"))
	require.NoError(t, Save(c))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/files/archive", got.Endpoints.Download)
	require.Equal(t, DefaultAPIURL, got.APIURL)
}

func TestGetMirrorsSet(t *testing.T) {
	c := Default()
	for _, k := range Keys {
		if k == "api-url" || k == "log-level" {
			continue
		}
		v := "/x"
		if k == "timeout" {
			v = "5s"
		}
		require.NoError(t, Set(&c, k, v), k)
		got, err := Get(c, k)
		require.NoError(t, err)
		require.Equal(t, v, got, k)
	}

	_, err := Get(c, "colour")
	require.Error(t, err)
}
