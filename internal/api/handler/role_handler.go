package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learning/securedapp/internal/core/domain"
	"github.com/learning/securedapp/internal/core/ports"
)

// RoleHandler serves the role catalog.
type RoleHandler struct {
	security ports.SecurityService
}

func NewRoleHandler(security ports.SecurityService) *RoleHandler {
	return &RoleHandler{security: security}
}

// List returns the full role catalog.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  roleResponse
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	catalog, err := h.security.GetAllRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCatalogResponse(catalog))
}

// Create adds a role to the catalog.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role definition"
// @Success      201   {object}  roleResponse
// @Failure      400   {object}  errorResponse
// @Router       /roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.security.CreateRole(c.Request().Context(), &domain.Role{
		Name:        req.Name,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRoleResponse(created))
}
