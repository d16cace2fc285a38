package sync

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	stdsync "sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/tokmz/dictsync/pkg/brandapi"
	"github.com/tokmz/dictsync/pkg/config"
	"github.com/tokmz/dictsync/pkg/dict"
	"github.com/tokmz/dictsync/pkg/errors"
	"github.com/tokmz/dictsync/pkg/logger"
	"github.com/tokmz/dictsync/pkg/output"
)

// warnings 记录 Warn 级别日志
type warnings struct {
	mu   stdsync.Mutex
	msgs []string
}

func (w *warnings) hook() logger.Hook {
	return logger.HookFunc(func(e zapcore.Entry, _ []zapcore.Field) error {
		if e.Level == zapcore.WarnLevel {
			w.mu.Lock()
			w.msgs = append(w.msgs, e.Message)
			w.mu.Unlock()
		}
		return nil
	})
}

func newLogger(t *testing.T, w *warnings) logger.Logger {
	t.Helper()
	var buf bytes.Buffer
	log, err := logger.NewWithOptions(logger.WithWriter(&buf), logger.WithHook(w.hook()))
	require.NoError(t, err)
	return log
}

// fakeServer 模拟翻译平台，dicts 中缺失的语言返回 404
func fakeServer(t *testing.T, codes []string, dicts map[string]string) config.Settings {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/api/v2/brands/acme/languages"
		switch {
		case r.URL.Path == prefix:
			var b strings.Builder
			b.WriteString("[")
			for i, c := range codes {
				if i > 0 {
					b.WriteString(",")
				}
				b.WriteString(`{"code":"` + c + `"}`)
			}
			b.WriteString("]")
			w.Write([]byte(b.String()))
		case strings.HasPrefix(r.URL.Path, prefix+"/") && strings.HasSuffix(r.URL.Path, "/dictionary"):
			code := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, prefix+"/"), "/dictionary")
			body, ok := dicts[code]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(body))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	t.Cleanup(srv.Close)
	return config.Settings{Host: srv.URL, Brand: "acme", Key: "k"}
}

func TestRun_SkipsFailedLanguage(t *testing.T) {
	settings := fakeServer(t, []string{"en", "de", "fr"}, map[string]string{
		"en": `{"a.b":"x","a.c":"y"}`,
		"fr": `{"title":"Été"}`,
	})
	dir := t.TempDir()
	w := &warnings{}

	r := &Runner{
		API:    brandapi.NewClient(settings),
		Writer: &output.Writer{Dir: dir},
		Log:    newLogger(t, w),
	}
	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "en.json"), filepath.Join(dir, "fr.json")}, report.Written)
	assert.Equal(t, []string{"de"}, report.Skipped)
	assert.Equal(t, []string{SkipMessage + "de"}, w.msgs)

	en, err := os.ReadFile(filepath.Join(dir, "en.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"b\": \"x\",\n    \"c\": \"y\"\n  }\n}", string(en))

	fr, err := os.ReadFile(filepath.Join(dir, "fr.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"title\": \"Été\"\n}", string(fr))

	assert.NoFileExists(t, filepath.Join(dir, "de.json"))
}

func TestRun_ListFailureWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	dir := t.TempDir()

	r := &Runner{
		API:    brandapi.NewClient(config.Settings{Host: srv.URL, Brand: "acme", Key: "bad"}),
		Writer: &output.Writer{Dir: dir},
	}
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, brandapi.ErrListLanguages)
	assert.Equal(t, 1, errors.ExitCode(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_EmptyListing(t *testing.T) {
	settings := fakeServer(t, nil, nil)
	r := &Runner{API: brandapi.NewClient(settings), Writer: &output.Writer{Dir: t.TempDir()}}
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Written)
	assert.Empty(t, report.Skipped)
}

func TestRun_ConflictAborts(t *testing.T) {
	settings := fakeServer(t, []string{"en", "de"}, map[string]string{
		"en": `{"a":1,"a.b":2}`,
		"de": `{"x":"y"}`,
	})
	dir := t.TempDir()
	r := &Runner{API: brandapi.NewClient(settings), Writer: &output.Writer{Dir: dir}}

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLanguage)
	assert.ErrorIs(t, err, dict.ErrConflictingKeyPath)

	var ce *dict.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "a.b", ce.Key)
	assert.NoFileExists(t, filepath.Join(dir, "de.json"))
}

func TestRun_DecodeErrorAborts(t *testing.T) {
	settings := fakeServer(t, []string{"en"}, map[string]string{"en": `not json`})
	r := &Runner{API: brandapi.NewClient(settings), Writer: &output.Writer{Dir: t.TempDir()}}
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, brandapi.ErrDecode)
}

func TestRun_Only(t *testing.T) {
	settings := fakeServer(t, []string{"en", "pt-BR", "de"}, map[string]string{
		"en":    `{}`,
		"pt-BR": `{}`,
		"de":    `{}`,
	})
	dir := t.TempDir()
	w := &warnings{}
	r := &Runner{
		API:    brandapi.NewClient(settings),
		Writer: &output.Writer{Dir: dir},
		Log:    newLogger(t, w),
		Only:   []string{"pt_br", "de", "zz"},
	}
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "pt-BR.json"), filepath.Join(dir, "de.json")}, report.Written)
	assert.Equal(t, []string{"language not offered by brand"}, w.msgs)
}

func TestRun_DryRun(t *testing.T) {
	settings := fakeServer(t, []string{"en"}, map[string]string{"en": `{"a":"b"}`})
	dir := t.TempDir()
	r := &Runner{API: brandapi.NewClient(settings), Writer: &output.Writer{Dir: dir}, DryRun: true}

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "en.json")}, report.Written)
	assert.NoFileExists(t, filepath.Join(dir, "en.json"))
}

func TestRun_Check(t *testing.T) {
	settings := fakeServer(t, []string{"en", "de", "fr"}, map[string]string{
		"en": `{"a":"b"}`,
		"de": `{"a":"neu"}`,
		"fr": `{"a":"b"}`,
	})
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte("{\n  \"a\": \"b\"\n}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.json"), []byte("{\n  \"a\": \"alt\"\n}"), 0o644))

	r := &Runner{API: brandapi.NewClient(settings), Writer: &output.Writer{Dir: dir}, Check: true}
	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Drift())
	assert.Equal(t, []string{"de"}, report.Stale)
	assert.Equal(t, []string{"fr"}, report.Missing)
	assert.Empty(t, report.Written)
	assert.NoFileExists(t, filepath.Join(dir, "fr.json"))
}

type stubAPI struct {
	langs []brandapi.Language
	fetch func(code string) ([]dict.Entry, error)
}

func (s *stubAPI) ListLanguages(context.Context) ([]brandapi.Language, error) {
	return s.langs, nil
}

func (s *stubAPI) FetchDictionary(_ context.Context, code string) ([]dict.Entry, error) {
	return s.fetch(code)
}

func TestRun_RunIDInContext(t *testing.T) {
	var seen string
	api := &stubAPI{
		langs: []brandapi.Language{{Code: "en"}},
		fetch: func(string) ([]dict.Entry, error) { return nil, nil },
	}
	api2 := &ctxAPI{stubAPI: api, seen: &seen}

	r := &Runner{API: api2, Writer: &output.Writer{Dir: t.TempDir()}}
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, seen)

	ctx := logger.WithRunID(context.Background(), "fixed")
	_, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fixed", seen)
}

type ctxAPI struct {
	*stubAPI
	seen *string
}

func (c *ctxAPI) ListLanguages(ctx context.Context) ([]brandapi.Language, error) {
	*c.seen = logger.RunIDFromContext(ctx)
	return c.stubAPI.ListLanguages(ctx)
}

func TestSameLanguage(t *testing.T) {
	assert.True(t, sameLanguage("pt-BR", "pt_br"))
	assert.True(t, sameLanguage("EN", "en"))
	assert.False(t, sameLanguage("en", "en-GB"))
	assert.True(t, sameLanguage("custom!", "custom!"))
	assert.False(t, sameLanguage("custom!", "Custom!"))
}
