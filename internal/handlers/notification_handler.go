package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/repositories"
	"internship_backend/internal/services"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	notifications := rg.Group("/notifications")
	notifications.Use(authMW)
	{
		notifications.GET("", h.List)
		notifications.PATCH("/:id/read", h.MarkAsRead)
	}
}

// List godoc
// @Summary Уведомления текущего пользователя
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Только непрочитанные"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.NotificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.notificationService.List(c.Request.Context(), h.GetDB(c), principal.UserID, repositories.NotificationCriteria{
		UnreadOnly: ParseQueryBool(c, "unread_only"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MarkAsRead godoc
// @Summary Отметить уведомление прочитанным
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID уведомления"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.UUIDParam(c, "id", apperrors.ErrNotificationNotFound)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(c.Request.Context(), h.GetDB(c), principal.UserID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}
