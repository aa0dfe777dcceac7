package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/learning/securedapp/internal/api/handler"
	"github.com/learning/securedapp/internal/core/domain"
)

type fixedSecurityService struct {
	users   []*domain.User
	catalog []*domain.Role
}

func (s *fixedSecurityService) GetAllUsers(_ context.Context) ([]*domain.User, error) {
	return s.users, nil
}

func (s *fixedSecurityService) GetAllRoles(_ context.Context) ([]*domain.Role, error) {
	return s.catalog, nil
}

func (s *fixedSecurityService) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fixedSecurityService) CreateUser(_ context.Context, candidate *domain.User) (*domain.User, error) {
	return candidate, nil
}

func (s *fixedSecurityService) UpdateUser(_ context.Context, candidate *domain.User) (*domain.User, error) {
	return candidate, nil
}

func (s *fixedSecurityService) CreateRole(_ context.Context, role *domain.Role) (*domain.Role, error) {
	return role, nil
}

type fixedAuthService struct{}

func (s *fixedAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

type fixedCategoryService struct{}

func (s *fixedCategoryService) GetAllCategories(_ context.Context) ([]*domain.Category, error) {
	return nil, nil
}

func (s *fixedCategoryService) GetCategoryByID(_ context.Context, _ string) (*domain.Category, error) {
	return nil, domain.ErrCategoryNotFound
}

func (s *fixedCategoryService) CreateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	return c, nil
}

func (s *fixedCategoryService) UpdateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	return c, nil
}

func (s *fixedCategoryService) DeleteCategory(_ context.Context, _ string) error {
	return nil
}

func newTestRouter() http.Handler {
	return NewRouter(Deps{
		Security:  &fixedSecurityService{users: []*domain.User{{ID: "u1", Username: "alice"}}},
		Auth:      &fixedAuthService{},
		Category:  &fixedCategoryService{},
		Health:    handler.NewHealthHandler(),
		Readiness: handler.NewReadinessHandler(nil, nil),
		JWTSecret: "secret",
		HTTPSPort: "8443",
		Logger:    zerolog.Nop(),
	})
}

func bearerFor(t *testing.T, permissions ...string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username":    "alice",
		"roles":       []string{"ADMIN"},
		"permissions": permissions,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + signed
}

// secureRequest fakes a request that already arrived over TLS so the
// transport policy lets it through to the security checks.
func secureRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Forwarded-Proto", "https")
	return req
}

func TestRouter_InsecureRequestRedirected(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Host = "example.com:8080"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("expected 308, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://example.com:8443/users" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestRouter_UnauthenticatedUsersListChallenged(t *testing.T) {
	e := newTestRouter()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, secureRequest(http.MethodGet, "/users", ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "alice") {
		t.Fatalf("user list leaked to unauthenticated caller")
	}
}

func TestRouter_MissingPermissionForbidden(t *testing.T) {
	e := newTestRouter()

	req := secureRequest(http.MethodGet, "/users", "")
	req.Header.Set("Authorization", bearerFor(t, domain.PermissionManageCategories))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_AuthorizedUsersList(t *testing.T) {
	e := newTestRouter()

	req := secureRequest(http.MethodGet, "/users", "")
	req.Header.Set("Authorization", bearerFor(t, domain.PermissionManageUsers))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "alice") {
		t.Fatalf("expected user list, got %s", rec.Body.String())
	}
}

func TestRouter_HealthBypassesAuth(t *testing.T) {
	e := newTestRouter()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, secureRequest(http.MethodGet, "/health", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRedirectRouter_AllPathsRedirected(t *testing.T) {
	e := NewRedirectRouter("8443")

	for _, path := range []string{"/", "/users", "/auth/login", "/anything/else"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Host = "example.com:8080"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusPermanentRedirect {
			t.Fatalf("path %s: expected 308, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "https://example.com:8443"+path {
			t.Fatalf("path %s: unexpected location %s", path, loc)
		}
	}
}
