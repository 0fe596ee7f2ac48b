package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	domainerrors "github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/errors"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/i18n"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/logging"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

const orgKinshasa = "5f0c6a52-1b7e-4d5b-9a55-3f1f2a7e0c11"

type fakeVerifier struct {
	tokens map[string]*entities.Identity
	panics bool
}

func (f *fakeVerifier) VerifyHeader(header string) (*entities.Identity, error) {
	if f.panics {
		panic("verifier exploded")
	}
	if header == "" {
		return nil, domainerrors.ErrMissingCredential
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, domainerrors.ErrMissingCredential
	}
	return f.Verify(token)
}

func (f *fakeVerifier) Verify(token string) (*entities.Identity, error) {
	identity, ok := f.tokens[token]
	if !ok {
		return nil, domainerrors.ErrInvalidCredential
	}
	return identity, nil
}

type fakeProfileStore struct {
	orgs  map[string]string
	err   error
	calls int
}

func (f *fakeProfileStore) OrganizationIDByEmail(_ context.Context, email string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.orgs[email], nil
}

type errorBody struct {
	Status        int      `json:"status"`
	Error         string   `json:"error"`
	RequiredRoles []string `json:"requiredRoles"`
	AllowedRoles  []string `json:"allowedRoles"`
	CurrentRole   string   `json:"currentRole"`
}

func ptr(s string) *string { return &s }

func testIdentities() map[string]*entities.Identity {
	return map[string]*entities.Identity{
		"superadmin": {UserID: "u-1", Email: "root@congomuv.cd", Role: entities.RoleSuperAdmin},
		"admin":      {UserID: "u-2", Email: "admin@onatra.cd", Role: entities.RoleAdmin, OrganizationID: ptr(orgKinshasa)},
		"operator":   {UserID: "u-3", Email: "ops@onatra.cd", Role: entities.RoleOperator},
		"orphan":     {UserID: "u-4", Email: "nobody@onatra.cd", Role: entities.RoleOperator},
		"user":       {UserID: "u-5", Email: "passager@gmail.com", Role: entities.RoleUser},
		"driver":     {UserID: "u-6", Email: "driver@onatra.cd", Role: entities.Role("driver")},
		"ADMIN":      {UserID: "u-7", Email: "upper@onatra.cd", Role: entities.Role("ADMIN"), OrganizationID: ptr(orgKinshasa)},
	}
}

func setupAuth(t *testing.T, verifier *fakeVerifier, store *fakeProfileStore) *AuthMiddleware {
	t.Helper()
	logger := logging.NewNopLogger()
	registry := entities.DefaultRoleRegistry()
	return NewAuthMiddleware(
		verifier,
		services.NewAuthorizer(registry, logger),
		services.NewScopeResolver(registry, store, logger),
		logger,
	)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := i18n.New("en", "")
	if err != nil {
		t.Fatalf("failed to initialize i18n: %v", err)
	}

	router := gin.New()
	router.Use(NewI18nMiddleware(svc).DetectLanguage())
	return router
}

func scopeEcho(c *gin.Context) {
	scope := Scope(c)
	if scope == nil {
		c.JSON(http.StatusOK, gin.H{"scope": "global"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scope": *scope})
}

func doRequest(router *gin.Engine, path, token string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAuthMiddleware_Gate(t *testing.T) {
	store := &fakeProfileStore{orgs: map[string]string{"ops@onatra.cd": orgKinshasa}}
	auth := setupAuth(t, &fakeVerifier{tokens: testIdentities()}, store)

	router := newTestRouter(t)
	router.GET("/api/operator/trips", append(auth.ScopedGate(entities.RoleOperator), scopeEcho)...)
	router.GET("/api/bookings", append(auth.Gate(entities.RoleUser), scopeEcho)...)

	t.Run("sem header Authorization retorna 401 Missing credential", func(t *testing.T) {
		for _, path := range []string{"/api/operator/trips", "/api/bookings"} {
			w := doRequest(router, path, "")
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401, got %d", path, w.Code)
			}
			body := decodeError(t, w)
			if body.Error != "Missing credential" {
				t.Errorf("%s: expected 'Missing credential', got %q", path, body.Error)
			}
		}
	})

	t.Run("corpo de erro é application/problem+json", func(t *testing.T) {
		w := doRequest(router, "/api/bookings", "")
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
			t.Errorf("expected problem content type, got %q", ct)
		}
	})

	t.Run("token inválido retorna 401 Invalid or expired credential", func(t *testing.T) {
		w := doRequest(router, "/api/bookings", "forged")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Error != "Invalid or expired credential" {
			t.Errorf("unexpected error %q", body.Error)
		}
	})

	t.Run("papel fora do registry retorna 401 e nunca 403", func(t *testing.T) {
		w := doRequest(router, "/api/bookings", "driver")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Error != "Unrecognized role" {
			t.Errorf("unexpected error %q", body.Error)
		}
	})

	t.Run("user em rota de operator recebe 403 com diagnóstico", func(t *testing.T) {
		w := doRequest(router, "/api/operator/trips", "user")
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		body := decodeError(t, w)
		if len(body.RequiredRoles) != 1 || body.RequiredRoles[0] != "operator" {
			t.Errorf("expected requiredRoles [operator], got %v", body.RequiredRoles)
		}
		if body.CurrentRole != "user" {
			t.Errorf("expected currentRole user, got %q", body.CurrentRole)
		}
	})

	t.Run("admin passa em rota de operator com escopo das claims", func(t *testing.T) {
		calls := store.calls
		w := doRequest(router, "/api/operator/trips", "admin")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), orgKinshasa) {
			t.Errorf("expected scope %s, got %s", orgKinshasa, w.Body.String())
		}
		if store.calls != calls {
			t.Error("profile store should not be called when claims carry the organization")
		}
	})

	t.Run("papel em maiúsculas é normalizado", func(t *testing.T) {
		w := doRequest(router, "/api/operator/trips", "ADMIN")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("superadmin recebe escopo global sem consultar o profile store", func(t *testing.T) {
		calls := store.calls
		w := doRequest(router, "/api/operator/trips", "superadmin")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "global") {
			t.Errorf("expected global scope, got %s", w.Body.String())
		}
		if store.calls != calls {
			t.Error("profile store must not be called for the top-level role")
		}
	})

	t.Run("operator sem organização nas claims usa o profile store", func(t *testing.T) {
		w := doRequest(router, "/api/operator/trips", "operator")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), orgKinshasa) {
			t.Errorf("expected scope from profile store, got %s", w.Body.String())
		}
	})

	t.Run("operator sem perfil retorna 403 Organization required", func(t *testing.T) {
		w := doRequest(router, "/api/operator/trips", "orphan")
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Error != "Organization required" {
			t.Errorf("unexpected error %q", body.Error)
		}
	})

	t.Run("rota sem RequireOrganization não expõe escopo", func(t *testing.T) {
		w := doRequest(router, "/api/bookings", "superadmin")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestAuthMiddleware_ProfileStoreFailure(t *testing.T) {
	store := &fakeProfileStore{err: errors.New("connection refused")}
	auth := setupAuth(t, &fakeVerifier{tokens: testIdentities()}, store)

	router := newTestRouter(t)
	router.GET("/api/operator/trips", append(auth.ScopedGate(entities.RoleOperator), scopeEcho)...)

	w := doRequest(router, "/api/operator/trips", "operator")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Error != "Profile store unavailable" {
		t.Errorf("unexpected error %q", body.Error)
	}
}

func TestAuthMiddleware_PanicBecomesInternalError(t *testing.T) {
	auth := setupAuth(t, &fakeVerifier{panics: true}, &fakeProfileStore{})

	router := newTestRouter(t)
	router.GET("/api/bookings", append(auth.Gate(entities.RoleUser), scopeEcho)...)

	w := doRequest(router, "/api/bookings", "user")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Error != "Internal authorization error" {
		t.Errorf("unexpected error %q", body.Error)
	}
}

func TestBearerFromCookie(t *testing.T) {
	auth := setupAuth(t, &fakeVerifier{tokens: testIdentities()}, &fakeProfileStore{})

	router := newTestRouter(t)
	router.GET("/api/operator/live", append([]gin.HandlerFunc{BearerFromCookie()}, append(auth.ScopedGate(entities.RoleOperator), scopeEcho)...)...)

	t.Run("upgrade websocket usa o cookie de sessão", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/operator/live", nil)
		req.Header.Set("Upgrade", "websocket")
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "admin"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("requisição comum ignora o cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/operator/live", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "admin"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}
