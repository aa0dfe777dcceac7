package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learning/securedapp/internal/core/domain"
)

type stubSecurityService struct {
	getAllUsersFn func(ctx context.Context) ([]*domain.User, error)
	getAllRolesFn func(ctx context.Context) ([]*domain.Role, error)
	getUserFn     func(ctx context.Context, id string) (*domain.User, error)
	createUserFn  func(ctx context.Context, candidate *domain.User) (*domain.User, error)
	updateUserFn  func(ctx context.Context, candidate *domain.User) (*domain.User, error)
	createRoleFn  func(ctx context.Context, role *domain.Role) (*domain.Role, error)
}

func (s *stubSecurityService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.getAllUsersFn(ctx)
}

func (s *stubSecurityService) GetAllRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.getAllRolesFn(ctx)
}

func (s *stubSecurityService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserFn(ctx, id)
}

func (s *stubSecurityService) CreateUser(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	return s.createUserFn(ctx, candidate)
}

func (s *stubSecurityService) UpdateUser(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	return s.updateUserFn(ctx, candidate)
}

func (s *stubSecurityService) CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	return s.createRoleFn(ctx, role)
}

func TestUserHandler_List(t *testing.T) {
	e := echo.New()
	stub := &stubSecurityService{
		getAllUsersFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{{
				ID:       "u1",
				Username: "alice",
				Roles:    []*domain.Role{{ID: "r1", Name: "ADMIN"}},
				Enabled:  true,
			}}, nil
		},
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp[0]["password"]; leaked {
		t.Fatalf("password leaked into response")
	}
}

func TestUserHandler_Create_PassesSubmission(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSecurityService{
		createUserFn: func(ctx context.Context, candidate *domain.User) (*domain.User, error) {
			if candidate.Username != "bob" || candidate.Password != "pw" {
				t.Fatalf("unexpected candidate: %+v", candidate)
			}
			if len(candidate.RoleIDs) != 1 || candidate.RoleIDs[0] != "r1" {
				t.Fatalf("unexpected role ids: %v", candidate.RoleIDs)
			}
			created := *candidate
			created.ID = "u2"
			created.Password = ""
			created.PasswordHash = "$hash"
			return &created, nil
		},
	}
	h := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"bob","password":"pw","email":"bob@example.com","role_ids":["r1"],"enabled":true}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$hash") || strings.Contains(rec.Body.String(), `"pw"`) {
		t.Fatalf("credential material leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_ValidationErrorEnvelope(t *testing.T) {
	e := echo.New()
	stub := &stubSecurityService{
		createUserFn: func(ctx context.Context, candidate *domain.User) (*domain.User, error) {
			return nil, &domain.ValidationError{Fields: []domain.FieldError{
				{Field: "username", Code: domain.CodeRequired},
			}}
		},
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var ve *domain.ValidationError
	if err == nil {
		t.Fatalf("expected error to propagate to the error handler")
	}
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserHandler_EditForm_PositionalSlots(t *testing.T) {
	e := echo.New()
	r1 := &domain.Role{ID: "r1", Name: "ADMIN"}
	r2 := &domain.Role{ID: "r2", Name: "EDITOR"}
	r3 := &domain.Role{ID: "r3", Name: "VIEWER"}
	stub := &stubSecurityService{
		getUserFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "u1", Username: "alice", RoleIDs: []string{"r1", "r3"}}, nil
		},
		getAllRolesFn: func(ctx context.Context) ([]*domain.Role, error) {
			return []*domain.Role{r1, r2, r3}, nil
		},
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/users/u1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.EditForm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		RoleSlots []*map[string]any `json:"role_slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.RoleSlots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(resp.RoleSlots))
	}
	if resp.RoleSlots[0] == nil || resp.RoleSlots[1] != nil || resp.RoleSlots[2] == nil {
		t.Fatalf("unexpected slot shape: %+v", resp.RoleSlots)
	}
}

func TestUserHandler_EditForm_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubSecurityService{
		getUserFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.EditForm(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
