package handler

import (
	"time"

	"github.com/learning/securedapp/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// userRequest is the create/update submission. Password is optional on
// update (blank keeps the stored hash); the schema leaves required-ness of
// username and password to the user record validator so the caller gets the
// full field-error list instead of a bind failure.
type userRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password,omitempty"`
	Email    string   `json:"email,omitempty" validate:"omitempty,email_format"`
	RoleIDs  []string `json:"role_ids"`
	Enabled  bool     `json:"enabled"`
}

type createRoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Permissions []string `json:"permissions"`
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// --- Response types ---

type roleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type userResponse struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email,omitempty"`
	Roles     []roleResponse `json:"roles"`
	Enabled   bool           `json:"enabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// userFormResponse is the edit-form model: the user plus the role catalog
// aligned as positional slots (null marks "not assigned at catalog index k").
type userFormResponse struct {
	User      *userResponse   `json:"user,omitempty"`
	RoleSlots []*roleResponse `json:"role_slots"`
	Catalog   []roleResponse  `json:"roles_list"`
}

type validationErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields"`
}

func toRoleResponse(r *domain.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name, Permissions: r.Permissions}
}

func toUserResponse(u *domain.User) *userResponse {
	roles := make([]roleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, toRoleResponse(r))
	}
	return &userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     roles,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toRoleSlots(slots []*domain.Role) []*roleResponse {
	out := make([]*roleResponse, len(slots))
	for i, r := range slots {
		if r != nil {
			rr := toRoleResponse(r)
			out[i] = &rr
		}
	}
	return out
}

func toCatalogResponse(catalog []*domain.Role) []roleResponse {
	out := make([]roleResponse, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, toRoleResponse(r))
	}
	return out
}
