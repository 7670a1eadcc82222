package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjyadmin/installer/internal/config"
	"github.com/bjyadmin/installer/internal/readiness"
	"github.com/bjyadmin/installer/internal/wizard"
)

// fixture wires a real checker against a temp install tree.
type fixture struct {
	paths   config.PathsConfig
	server  *Server
	lock    *wizard.Lock
	handler http.Handler
}

func newFixture(t *testing.T, version string, opts ...Option) *fixture {
	t.Helper()
	base := t.TempDir()
	paths := config.PathsConfig{
		Base:    base,
		Upload:  filepath.Join(base, config.DefaultUploadDir),
		Runtime: filepath.Join(base, config.DefaultRuntimeDir),
		Install: filepath.Join(base, config.DefaultInstallDir),
		Conf:    filepath.Join(base, config.DefaultConfDir),
	}
	for _, d := range paths.Directories() {
		require.NoError(t, os.MkdirAll(d.Path, 0o755))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := readiness.New(paths,
		readiness.WithVersionSource(readiness.StaticVersion(version)),
		readiness.WithOSName("Linux"),
		readiness.WithLogger(logger))
	lock := wizard.NewLock(paths.Install)

	srv, err := NewServer(checker, lock, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return &fixture{paths: paths, server: srv, lock: lock, handler: srv.Handler()}
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_RootRedirectsToAgreement(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/index.php?c=agreement", rec.Header().Get("Location"))
}

func TestServer_AgreementPage(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/index.php?c=agreement")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "使用协议")
	assert.Contains(t, body, "环境检测")
	assert.Contains(t, body, "创建数据")
	assert.Contains(t, body, "安装完成")
	assert.Equal(t, 1, strings.Count(body, "schedule active"))
	assert.Contains(t, body, "./index.php?c=agreement&amp;a=next")
}

func TestServer_EmptyStepDefaultsToAgreement(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/index.php")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "box agreement")
}

func TestServer_AgreementNextGoesToEnvironment(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/index.php?c=agreement&a=next")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "./index.php?c=test", rec.Header().Get("Location"))
}

func TestServer_EnvironmentAllPassing(t *testing.T) {
	// Given a supported version and five writable directories
	f := newFixture(t, "7.4.3")

	// When the environment page is rendered
	rec := f.get(t, "/index.php?c=test")

	// Then every row carries a pass marker and the gate is open
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 7, strings.Count(body, "√"))
	assert.Equal(t, 7, strings.Count(body, `class="yes"`))
	assert.NotContains(t, body, "×")
	assert.Contains(t, body, `data-all-passed="true"`)
	assert.Contains(t, body, "环境监测")
	assert.Contains(t, body, "目录权限")
	assert.Contains(t, body, "php版本")
	assert.Contains(t, body, "7.4.3")
	assert.Contains(t, body, "./Public/install")
	assert.NotContains(t, body, `role="alert"`)

	// And next advances to data creation
	next := f.get(t, "/index.php?c=test&a=next")
	assert.Equal(t, http.StatusFound, next.Code)
	assert.Equal(t, "./index.php?c=create", next.Header().Get("Location"))
}

func TestServer_EnvironmentOldVersionBlocks(t *testing.T) {
	// Given an interpreter older than the minimum
	f := newFixture(t, "5.2.0")

	// When the page is rendered
	rec := f.get(t, "/index.php?c=test")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// Then the version row fails and the gate is closed
	assert.Equal(t, 6, strings.Count(body, "√"))
	assert.Equal(t, 1, strings.Count(body, "×"))
	assert.Contains(t, body, `data-all-passed="false"`)

	// And next stays on the environment step with the alert
	next := f.get(t, "/index.php?c=test&a=next")
	assert.Equal(t, http.StatusConflict, next.Code)
	assert.Empty(t, next.Header().Get("Location"))
	assert.Contains(t, next.Body.String(), `role="alert"`)
	assert.Contains(t, next.Body.String(), "您的配置或权限不符合要求")
	assert.Contains(t, next.Body.String(), "box test")
}

func TestServer_MissingDirectoryBlocks(t *testing.T) {
	f := newFixture(t, "7.4.3")
	require.NoError(t, os.RemoveAll(f.paths.Runtime))

	rec := f.get(t, "/index.php?c=test")

	body := rec.Body.String()
	assert.Contains(t, body, "不存在")
	assert.Contains(t, body, `data-all-passed="false"`)

	next := f.get(t, "/index.php?c=test&a=next")
	assert.Equal(t, http.StatusConflict, next.Code)
}

func TestServer_ReportIsFreshPerRequest(t *testing.T) {
	f := newFixture(t, "7.4.3")
	require.Contains(t, f.get(t, "/index.php?c=test").Body.String(), `data-all-passed="true"`)

	require.NoError(t, os.RemoveAll(f.paths.Upload))

	assert.Contains(t, f.get(t, "/index.php?c=test").Body.String(), `data-all-passed="false"`)
}

func TestServer_UnknownStepIsNotFound(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/index.php?c=bogus")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "页面不存在")
}

func TestServer_UnknownPathIsNotFound(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DoneNextIsNotFound(t *testing.T) {
	f := newFixture(t, "7.4.3")
	require.NoError(t, f.lock.MarkInstalled())

	rec := f.get(t, "/index.php?c=done&a=next")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_GatedStepsRequirePassingChecks(t *testing.T) {
	// Given: an interpreter below the minimum
	f := newFixture(t, "5.2.0")

	tests := []string{
		"/index.php?c=create",
		"/index.php?c=create&a=next",
		"/index.php?c=done",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			// When: jumping straight past the environment step
			rec := f.get(t, target)

			// Then: the operator is sent back and nothing is installed
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "./index.php?c=test", rec.Header().Get("Location"))
			assert.False(t, f.lock.Installed())
		})
	}
}

func TestServer_GateReopensOnceFixed(t *testing.T) {
	f := newFixture(t, "7.4.3")
	require.NoError(t, os.RemoveAll(f.paths.Runtime))

	rec := f.get(t, "/index.php?c=create")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "./index.php?c=test", rec.Header().Get("Location"))

	require.NoError(t, os.MkdirAll(f.paths.Runtime, 0o755))

	rec = f.get(t, "/index.php?c=create")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "box create")
}

func TestServer_DoneBeforeInstallRedirectsToCreate(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/index.php?c=done")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "./index.php?c=create", rec.Header().Get("Location"))
	assert.False(t, f.lock.Installed())
}

func TestServer_HeadNeverAdvances(t *testing.T) {
	// Given: a ready host
	f := newFixture(t, "7.4.3")

	// When: a HEAD request asks to finish the wizard
	req := httptest.NewRequest(http.MethodHead, "/index.php?c=create&a=next", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	// Then: it is refused and no lock is written
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
	assert.False(t, f.lock.Installed())
}

func TestServer_CreateNextMarksInstalled(t *testing.T) {
	// Given a wizard on the create step
	f := newFixture(t, "7.4.3")
	require.False(t, f.lock.Installed())

	// When the operator finishes
	rec := f.get(t, "/index.php?c=create&a=next")

	// Then the lock is written and the done page is shown
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "./index.php?c=done", rec.Header().Get("Location"))
	assert.True(t, f.lock.Installed())

	done := f.get(t, "/index.php?c=done")
	require.Equal(t, http.StatusOK, done.Code)
	assert.Contains(t, done.Body.String(), "安装时间")

	// And earlier steps now redirect to done
	again := f.get(t, "/index.php?c=test")
	assert.Equal(t, http.StatusFound, again.Code)
	assert.Equal(t, "./index.php?c=done", again.Header().Get("Location"))
}

func TestServer_EnglishMessages(t *testing.T) {
	f := newFixture(t, "5.2.0", WithLanguage("EN"))

	rec := f.get(t, "/index.php?c=test&a=next")

	body := rec.Body.String()
	assert.Contains(t, body, `lang="en"`)
	assert.Contains(t, body, "PHP version")
	assert.Contains(t, body, "Your configuration or permissions do not meet the requirements")
}

func TestServer_UnknownLanguageFallsBackToChinese(t *testing.T) {
	f := newFixture(t, "7.4.3", WithLanguage("fr"))

	rec := f.get(t, "/index.php?c=agreement")

	assert.Contains(t, rec.Body.String(), `lang="zh"`)
}

func TestServer_ReadinessAPI(t *testing.T) {
	f := newFixture(t, "5.2.0")

	rec := f.get(t, "/api/readiness")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		AllPassed bool   `json:"all_passed"`
		Summary   string `json:"summary"`
		Passed    int    `json:"passed"`
		Total     int    `json:"total"`
		Checks    []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Status string `json:"status"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.AllPassed)
	assert.Equal(t, "blocked", resp.Summary)
	assert.Equal(t, 6, resp.Passed)
	assert.Equal(t, 7, resp.Total)
	require.Len(t, resp.Checks, 7)
	assert.Equal(t, "version", resp.Checks[1].Kind)
	assert.Equal(t, "fail", resp.Checks[1].Status)
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t, "7.4.3")

	rec := f.get(t, "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_MethodNotAllowed(t *testing.T) {
	f := newFixture(t, "7.4.3")

	req := httptest.NewRequest(http.MethodPost, "/api/readiness", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	f := newFixture(t, "7.4.3")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.server.Serve(ctx, ln) }()

	httpClient := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := httpClient.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
