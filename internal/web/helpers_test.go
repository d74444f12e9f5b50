// ABOUTME: Shared test fixtures for the document UI
// ABOUTME: Runs a Server on httptest against in-memory stores with a cookie-keeping client

package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/2389/scribe/internal/auth"
	"github.com/2389/scribe/internal/credentials"
	"github.com/2389/scribe/internal/documents"
	"github.com/2389/scribe/internal/session"
)

const (
	testDataDir   = "/srv/data"
	testUsersFile = "/srv/users.yml"
	testSecret    = "test-secret-0123456789"
)

// testEnv is a running server plus direct handles on its stores
type testEnv struct {
	t        *testing.T
	server   *httptest.Server
	client   *http.Client
	fs       afero.Fs
	docs     *documents.Store
	users    *credentials.Store
	sessions *session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	docs := documents.NewStore(fs, testDataDir)
	require.NoError(t, docs.EnsureDir())

	users := credentials.NewStore(fs, testUsersFile, credentials.WithCost(bcrypt.MinCost))
	require.NoError(t, users.Register("admin", "secret"))

	sessions := session.NewStore(time.Hour, 100)
	t.Cleanup(sessions.Close)

	signer, err := auth.NewCookieSigner([]byte(testSecret))
	require.NoError(t, err)

	s := New(Deps{
		Documents:   docs,
		Credentials: users,
		Sessions:    sessions,
		Signer:      signer,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, Config{})

	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	return &testEnv{
		t:        t,
		server:   server,
		client:   newClient(t),
		fs:       fs,
		docs:     docs,
		users:    users,
		sessions: sessions,
	}
}

// newClient returns a client that keeps cookies and does not follow redirects
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// response is a fully read HTTP response
type response struct {
	status int
	header http.Header
	body   string
}

func (e *testEnv) do(req *http.Request) response {
	e.t.Helper()
	resp, err := e.client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: string(body)}
}

func (e *testEnv) get(path string) response {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(e.t, err)
	return e.do(req)
}

func (e *testEnv) post(path string, form url.Values) response {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

// home fetches the index, consuming any pending flash
func (e *testEnv) home() response {
	e.t.Helper()
	return e.get("/")
}

func (e *testEnv) signIn() {
	e.t.Helper()
	resp := e.post("/users/signin", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(e.t, http.StatusFound, resp.status)
	// consume the welcome flash
	e.home()
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func (e *testEnv) createDocument(name, content string) {
	e.t.Helper()
	require.NoError(e.t, e.docs.Write(name, []byte(content)))
}
