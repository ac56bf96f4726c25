package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/reservas-canchas/internal/application/audit"
	"github.com/jhoicas/reservas-canchas/internal/application/auth"
	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/application/session"
	"github.com/jhoicas/reservas-canchas/internal/application/usecase"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/cache"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/reservas-canchas/internal/interfaces/http"
	"github.com/jhoicas/reservas-canchas/pkg/metrics"
	"github.com/jhoicas/reservas-canchas/pkg/password"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "reservas-canchas-test"
	testExpMin    = 60
)

// testServer la API completa sobre repositorios en memoria.
type testServer struct {
	app      *fiber.App
	users    *memory.UserRepo
	audit    *memory.AuditRepo
	types    *memory.CourtTypeRepo
	sessions *session.Manager
	hasher   *password.Hasher
}

type fakeReport struct{}

func (fakeReport) GenerateAuditPDF(_ context.Context, entries []*entity.AuditEntry, _ time.Time, _ string) ([]byte, error) {
	return []byte("%PDF-1.3 test"), nil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	m := metrics.NewNop()
	users := memory.NewUserRepository()
	auditRepo := memory.NewAuditRepository()
	types := memory.NewCourtTypeRepository()
	courts := memory.NewCourtRepository(types)

	auditSvc := audit.NewService(auditRepo, zerolog.Nop(), m)
	mgr := session.NewManager(cache.NewMemoryStore(time.Hour), auditSvc, time.Hour, zerolog.Nop())
	hasher := password.NewHasher(bcrypt.MinCost)
	authUC := auth.NewAuthUseCase(users, mgr, hasher, m, zerolog.Nop(), auth.Config{
		JWT: auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		CourtUC:     usecase.NewCourtUseCase(courts, types, auditSvc, zerolog.Nop()),
		UserUC:      usecase.NewUserUseCase(users),
		AuditSvc:    auditSvc,
		AuditExport: audit.NewExportUseCase(auditSvc, fakeReport{}),
		Sessions:    mgr,
		JWTSecret:   testJWTSecret,
	})
	return &testServer{app: app, users: users, audit: auditRepo, types: types, sessions: mgr, hasher: hasher}
}

// seedUser crea un usuario directamente en el almacén (permite roles no auto-asignables).
func (s *testServer) seedUser(t *testing.T, name, email, pass, role string) *entity.User {
	t.Helper()
	hash, err := s.hasher.Hash(pass)
	require.NoError(t, err)
	u := &entity.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

// login devuelve el header Authorization para el usuario.
func (s *testServer) login(t *testing.T, email, pass string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: pass})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return "Bearer " + out.Token
}

func (s *testServer) do(t *testing.T, method, path, authHeader string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}
