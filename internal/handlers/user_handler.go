package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/middleware"
	"internship_backend/internal/models"
	"internship_backend/internal/services"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authMW, middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.PATCH("/users/:id/status", h.UpdateStatus)
	}
}

// UpdateStatus godoc
// @Summary Включение или отключение учетной записи
// @Description Отключение также отзывает refresh-токены пользователя
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body dto.UpdateUserStatusRequest true "Статус"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.UUIDParam(c, "id", apperrors.ErrUserNotFound)
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.SetStatus(c.Request.Context(), h.GetDB(c), principal, id, *req.IsActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
