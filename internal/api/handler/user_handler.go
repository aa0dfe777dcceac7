package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learning/securedapp/internal/core/domain"
	"github.com/learning/securedapp/internal/core/ports"
)

// UserHandler serves the user management screens' JSON equivalents.
// Access control (authentication plus MANAGE_USERS) is enforced by the
// middleware chain before any of these run.
type UserHandler struct {
	security ports.SecurityService
}

func NewUserHandler(security ports.SecurityService) *UserHandler {
	return &UserHandler{security: security}
}

// List returns all users with their roles populated.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.security.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// NewForm returns the blank creation-form model: no user, an all-empty slot
// list and the full role catalog.
//
// @Summary      Blank user form
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userFormResponse
// @Router       /users/new [get]
func (h *UserHandler) NewForm(c echo.Context) error {
	catalog, err := h.security.GetAllRoles(c.Request().Context())
	if err != nil {
		return err
	}
	blank := &domain.User{}
	return c.JSON(http.StatusOK, userFormResponse{
		RoleSlots: toRoleSlots(blank.AssignmentSlots(catalog)),
		Catalog:   toCatalogResponse(catalog),
	})
}

// Create validates and persists a new user.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User submission"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.security.CreateUser(c.Request().Context(), &domain.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		RoleIDs:  req.RoleIDs,
		Enabled:  req.Enabled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(created))
}

// EditForm returns the edit-form model for one user: the record plus the
// role catalog as positional assignment slots.
//
// @Summary      User edit form
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userFormResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) EditForm(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.security.GetUserByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	catalog, err := h.security.GetAllRoles(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFormResponse{
		User:      toUserResponse(user),
		RoleSlots: toRoleSlots(user.AssignmentSlots(catalog)),
		Catalog:   toCatalogResponse(catalog),
	})
}

// Update re-validates and persists an existing user. A blank password keeps
// the stored hash.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User id"
// @Param        body  body      userRequest  true  "User submission"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  validationErrorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [post]
func (h *UserHandler) Update(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.security.UpdateUser(c.Request().Context(), &domain.User{
		ID:       c.Param("id"),
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		RoleIDs:  req.RoleIDs,
		Enabled:  req.Enabled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}
