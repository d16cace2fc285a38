package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmz/dictsync/pkg/config"
	"github.com/tokmz/dictsync/pkg/errors"
	dsync "github.com/tokmz/dictsync/pkg/sync"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/brands/acme/languages":
			w.Write([]byte(`[{"code":"en"},{"code":"de"}]`))
		case "/api/v2/brands/acme/languages/en/dictionary":
			w.Write([]byte(`{"menu.open":"Open","menu.close":"Close"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, host, out string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	content := "[main]\nhost = " + host + "\nbrand = acme\nkey = s3cret\noutput = " + out + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRun(t *testing.T) {
	srv := newAPI(t)
	out := t.TempDir()
	cfgFile := writeConfig(t, srv.URL, out)

	logs, err := execute(t, "--config", cfgFile)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "en.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"menu\": {\n    \"open\": \"Open\",\n    \"close\": \"Close\"\n  }\n}", string(data))
	assert.NoFileExists(t, filepath.Join(out, "de.json"))

	assert.Contains(t, logs, dsync.SkipMessage+"de")
	assert.NotContains(t, logs, "s3cret")
}

func TestRun_DebugNeverLogsKey(t *testing.T) {
	srv := newAPI(t)
	cfgFile := writeConfig(t, srv.URL, t.TempDir())

	logs, err := execute(t, "--config", cfgFile, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, logs, "/api/v2/brands/acme/languages")
	assert.NotContains(t, logs, "s3cret")
}

func TestRun_OutputFlagOverridesConfig(t *testing.T) {
	srv := newAPI(t)
	cfgFile := writeConfig(t, srv.URL, t.TempDir())
	out := t.TempDir()

	_, err := execute(t, "--config", cfgFile, "--output", out, "--only", "en")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "en.json"))
}

func TestRun_EnvOverridesConfig(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	cfgFile := writeConfig(t, srv.URL, t.TempDir())
	t.Setenv("DICTSYNC_MAIN_KEY", "from-env")

	_, err := execute(t, "--config", cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "from-env", gotKey)
}

func TestRun_MissingConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestRun_CheckDrift(t *testing.T) {
	srv := newAPI(t)
	out := t.TempDir()
	cfgFile := writeConfig(t, srv.URL, out)

	_, err := execute(t, "--config", cfgFile, "--check")
	require.Error(t, err)
	assert.ErrorIs(t, err, dsync.ErrDrift)
	assert.Equal(t, 2, errors.ExitCode(err))
	assert.NoFileExists(t, filepath.Join(out, "en.json"))

	_, err = execute(t, "--config", cfgFile)
	require.NoError(t, err)
	_, err = execute(t, "--config", cfgFile, "--check")
	require.NoError(t, err)
}

func TestRun_DryRunAndCheckExclusive(t *testing.T) {
	_, err := execute(t, "--dry-run", "--check")
	require.Error(t, err)
	assert.Equal(t, 1, errors.ExitCode(err))
}

func TestRun_StdoutTrace(t *testing.T) {
	srv := newAPI(t)
	cfgFile := writeConfig(t, srv.URL, t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", cfgFile, "--trace", "stdout"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, stderr.String(), "dictsync.run")
	assert.Contains(t, stderr.String(), "dictsync.language")
}
