package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/examace/examace/internal/api"
	"github.com/examace/examace/internal/auth"
	"github.com/examace/examace/internal/catalog"
	"github.com/examace/examace/internal/repository/sqlite"
	"github.com/examace/examace/internal/services"
	"github.com/examace/examace/internal/session"
	"github.com/examace/examace/internal/testutil"
	"github.com/examace/examace/internal/testutil/mocks"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestServer wires real services over an in-memory database. Background
// job dispatch is mocked out.
func newTestServer(t *testing.T) (http.Handler, *auth.TokenManager) {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	questions, err := catalog.SeedQuestions()
	require.NoError(t, err)
	cat := catalog.Build(questions, catalog.Options{Seed: 1})

	attemptRepo := sqlite.NewAttemptRepository(db)
	statsRepo := sqlite.NewStatsRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueStatsRefresh", mock.Anything, mock.Anything).Return(nil).Maybe()
	jobQueue.On("EnqueueRankRefresh", mock.Anything).Return(nil).Maybe()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	attemptSvc := services.NewAttemptService(attemptRepo, jobQueue)

	srv := &api.Server{
		Catalog:        cat,
		Tokens:         tokens,
		AuthService:    services.NewAuthService(userRepo, auth.NewOTPStore(), tokens),
		ExamService:    services.NewExamService(cat),
		SessionService: services.NewSessionService(cat, session.NewRegistry(), attemptSvc),
		AttemptService: attemptSvc,
		StatsService:   services.NewStatsService(attemptRepo, statsRepo),
	}

	_, err = db.Exec(`INSERT INTO users (id, phone) VALUES ('u1', '9876543210')`)
	require.NoError(t, err)

	return srv.Routes(), tokens
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func TestServer_Health(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_ListExams(t *testing.T) {
	handler, _ := newTestServer(t)

	code, env := doJSON(t, handler, http.MethodGet, "/exams", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var exams []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &exams))
	assert.Len(t, exams, 5)
}

func TestServer_UnknownExamErrorEnvelope(t *testing.T) {
	handler, _ := newTestServer(t)

	code, env := doJSON(t, handler, http.MethodGet, "/exams/upsc", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	handler, tokens := newTestServer(t)

	code, env := doJSON(t, handler, http.MethodGet, "/attempts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = doJSON(t, handler, http.MethodGet, "/attempts", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token, err := tokens.Issue("u1", "9876543210")
	require.NoError(t, err)
	code, env = doJSON(t, handler, http.MethodGet, "/attempts", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestServer_SessionLifecycle(t *testing.T) {
	handler, tokens := newTestServer(t)
	token, err := tokens.Issue("u1", "9876543210")
	require.NoError(t, err)

	code, env := doJSON(t, handler, http.MethodPost, "/sessions", token, map[string]string{
		"exam_id":    "ssc-cgl",
		"section_id": "mock",
		"test_id":    "mock-1",
	})
	require.Equal(t, http.StatusCreated, code, "body: %s", env.Data)
	require.True(t, env.Success)

	var snap struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.NotEmpty(t, snap.ID)

	code, _ = doJSON(t, handler, http.MethodPost, "/sessions/"+snap.ID+"/answer", token, map[string]int{"option": 1})
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, handler, http.MethodPost, "/sessions/"+snap.ID+"/navigate", token, map[string]string{"op": "next"})
	assert.Equal(t, http.StatusOK, code)

	code, env = doJSON(t, handler, http.MethodPost, "/sessions/"+snap.ID+"/submit", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Success)

	var submitted struct {
		Result   json.RawMessage `json:"result"`
		Analysis json.RawMessage `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submitted))
	assert.NotEmpty(t, submitted.Result)
	assert.NotEmpty(t, submitted.Analysis)
}

func TestServer_AbandonSession(t *testing.T) {
	handler, tokens := newTestServer(t)
	token, err := tokens.Issue("u1", "9876543210")
	require.NoError(t, err)

	code, env := doJSON(t, handler, http.MethodPost, "/sessions", token, map[string]string{
		"exam_id":    "railway",
		"section_id": "mock",
		"test_id":    "mock-1",
	})
	require.Equal(t, http.StatusCreated, code)

	var snap struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))

	code, _ = doJSON(t, handler, http.MethodDelete, "/sessions/"+snap.ID, token, nil)
	assert.Equal(t, http.StatusOK, code)

	// A submit after abandoning has nothing to score.
	code, _ = doJSON(t, handler, http.MethodPost, "/sessions/"+snap.ID+"/submit", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
