package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/earlysvahn/aiwriter/internal/action"
	"github.com/earlysvahn/aiwriter/internal/config"
	"github.com/earlysvahn/aiwriter/internal/db"
	"github.com/earlysvahn/aiwriter/internal/store"
	"github.com/earlysvahn/aiwriter/internal/writer"
)

type fakeAzure struct {
	*httptest.Server
	calls atomic.Int32
	last  atomic.Value
}

func newFakeAzure(t *testing.T, answer string) *fakeAzure {
	t.Helper()
	f := &fakeAzure{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.last.Store(string(body))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": answer}}},
		})
	}))
	t.Cleanup(f.Close)
	return f
}

func setupEnv(t *testing.T, endpoint string) string {
	t.Helper()
	keyring.MockInit()
	dir := t.TempDir()
	t.Setenv("AIWRITER_CONFIG_DIR", dir)
	t.Setenv("AIWRITER_API_KEY", "")
	t.Setenv("AIWRITER_ENDPOINT", "")
	t.Setenv("AIWRITER_LANG", "")
	require.NoError(t, config.Save(config.Settings{APIKey: "test-key", Endpoint: endpoint, Language: "English"}))
	return dir
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quietOpts() actionOptions {
	return actionOptions{quiet: true, storageBackend: "file"}
}

func TestRunAction_UpdatesFileAndRecordsHistory(t *testing.T) {
	srv := newFakeAzure(t, " and more.")
	setupEnv(t, srv.URL)
	path := writeDoc(t, "Some text")

	var out bytes.Buffer
	err := runAction(context.Background(), *action.Get(action.Continue), path, quietOpts(), strings.NewReader(""), &out)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Some text and more.", string(b))
	assert.Empty(t, out.String())
	assert.Equal(t, int32(1), srv.calls.Load())
	assert.Contains(t, srv.last.Load().(string), `"content":"Some text"`)

	entries, err := store.NewFileStore().List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, action.Continue, entries[0].Action)
	assert.Equal(t, " and more.", entries[0].Answer)
}

func TestRunAction_ReplacesSelection(t *testing.T) {
	srv := newFakeAzure(t, "Hi")
	setupEnv(t, srv.URL)
	path := writeDoc(t, "Hello world")

	opts := quietOpts()
	opts.selection = "0:5"
	opts.noHistory = true
	require.NoError(t, runAction(context.Background(), *action.Get(action.Rewrite), path, opts, strings.NewReader(""), io.Discard))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi world", string(b))

	_, err = os.Stat(filepath.Join(config.Dir(), "history.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunAction_DryRunSendsNothing(t *testing.T) {
	srv := newFakeAzure(t, "unused")
	setupEnv(t, srv.URL)
	path := writeDoc(t, "Draft")

	opts := quietOpts()
	opts.dryRun = true
	var out bytes.Buffer
	require.NoError(t, runAction(context.Background(), *action.Get(action.Summarize), path, opts, strings.NewReader(""), &out))

	assert.Equal(t, int32(0), srv.calls.Load())
	assert.True(t, strings.HasPrefix(out.String(), `{"temperature":0.7,"messages":[`))
	assert.Contains(t, out.String(), `"content":"Draft"`)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Draft", string(b))
}

func TestRunAction_StdinPrintsResult(t *testing.T) {
	srv := newFakeAzure(t, "!")
	setupEnv(t, srv.URL)

	var out bytes.Buffer
	err := runAction(context.Background(), *action.Get(action.Continue), "-", quietOpts(), strings.NewReader("from stdin"), &out)
	require.NoError(t, err)
	assert.Equal(t, "from stdin!", out.String())
}

func TestRunAction_PrintLeavesFileUntouched(t *testing.T) {
	srv := newFakeAzure(t, " end")
	setupEnv(t, srv.URL)
	path := writeDoc(t, "start")

	opts := quietOpts()
	opts.print = true
	var out bytes.Buffer
	require.NoError(t, runAction(context.Background(), *action.Get(action.Continue), path, opts, strings.NewReader(""), &out))

	assert.Equal(t, "start end", out.String())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "start", string(b))
}

func TestRunAction_NoActiveDocument(t *testing.T) {
	srv := newFakeAzure(t, "unused")
	setupEnv(t, srv.URL)

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.md")} {
		err := runAction(context.Background(), *action.Get(action.Summarize), path, quietOpts(), strings.NewReader(""), io.Discard)
		require.Error(t, err)
		assert.True(t, errors.Is(err, writer.ErrNoActiveDocument), "path %q: %v", path, err)
	}
	assert.Equal(t, int32(0), srv.calls.Load())
}

func TestRunAction_TransportFailureKeepsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"401","message":"Access denied"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()
	setupEnv(t, srv.URL)
	path := writeDoc(t, "keep me")

	err := runAction(context.Background(), *action.Get(action.Continue), path, quietOpts(), strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(writer.Notice(err), "Error: "))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(b))
}

func TestRunAction_BadSelection(t *testing.T) {
	setupEnv(t, "https://example.invalid")
	path := writeDoc(t, "abc")

	opts := quietOpts()
	opts.selection = "5:1"
	err := runAction(context.Background(), *action.Get(action.Continue), path, opts, strings.NewReader(""), io.Discard)
	assert.Error(t, err)
}

func TestSetSetting(t *testing.T) {
	setupEnv(t, "https://example.invalid")

	require.NoError(t, setSetting("lang", "German", false, config.NewKeyring()))
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "German", cfg.Language)

	require.NoError(t, setSetting("apiKey", "secret-from-keyring", true, config.NewKeyring()))
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)

	stored, err := config.NewKeyring().Get()
	require.NoError(t, err)
	assert.Equal(t, "secret-from-keyring", stored)

	assert.Error(t, setSetting("lang", "German", true, config.NewKeyring()))
	assert.Error(t, setSetting("bogus", "x", false, config.NewKeyring()))
}

func TestCreateHistoryStore(t *testing.T) {
	t.Setenv("AIWRITER_CONFIG_DIR", t.TempDir())
	t.Setenv("AIWRITER_POSTGRES_DSN", "")

	s, err := CreateHistoryStore("file")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = CreateHistoryStore("sqlite")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = CreateHistoryStore("postgres")
	var notConfigured *db.PostgresNotConfiguredError
	assert.ErrorAs(t, err, &notConfigured)

	_, err = CreateHistoryStore("redis")
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestListHistory(t *testing.T) {
	t.Setenv("AIWRITER_CONFIG_DIR", t.TempDir())
	s := store.NewFileStore()
	require.NoError(t, s.Append(store.NewEntry("summarize", "notes.md", "English", "Summarize", "Short version.\nSecond line")))

	var out bytes.Buffer
	require.NoError(t, listHistory(&out, s, 10))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "summarize")
	assert.Contains(t, lines[1], "notes.md")
	assert.Contains(t, lines[1], "Short version.")
	assert.NotContains(t, lines[1], "Second line")
}

func TestParseInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sel := fs.String("select", "", "")
	quiet := fs.Bool("quiet", false, "")

	positional, err := parseInterspersed(fs, []string{"--quiet", "doc.md", "--select", "1:2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc.md"}, positional)
	assert.Equal(t, "1:2", *sel)
	assert.True(t, *quiet)
}

func TestRunAction_PlainPromptRejectsStdinDocument(t *testing.T) {
	srv := newFakeAzure(t, "unused")
	setupEnv(t, srv.URL)

	opts := quietOpts()
	opts.plain = true
	stdin := strings.NewReader("document text")
	err := runAction(context.Background(), *action.Get(action.Custom), "-", opts, stdin, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--plain")
	assert.Equal(t, int32(0), srv.calls.Load())
	assert.Equal(t, len("document text"), stdin.Len(), "stdin must not be consumed")
}
