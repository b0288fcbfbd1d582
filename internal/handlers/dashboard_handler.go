package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/services"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/dashboard", authMW, h.Get)
}

// Get godoc
// @Summary Сводка для роли текущего пользователя
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.dashboardService.GetDashboard(c.Request.Context(), h.GetDB(c), principal.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
