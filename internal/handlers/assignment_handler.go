package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/middleware"
	"internship_backend/internal/models"
	"internship_backend/internal/services"
	"internship_backend/internal/services/dto"
)

type AssignmentHandler struct {
	*BaseHandler
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(base *BaseHandler, assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       base,
		assignmentService: assignmentService,
	}
}

func (h *AssignmentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	assignments := rg.Group("/assignments")
	assignments.Use(authMW)
	{
		assignments.POST("", middleware.RequireRoles(models.UserRoleCoordinator, models.UserRoleAdmin), h.Create)
		assignments.GET("", middleware.RequireRoles(models.UserRoleCoordinator, models.UserRoleAdmin, models.UserRoleSupervisor), h.List)
	}
}

// Create godoc
// @Summary Назначение студента на стажировку
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssignmentRequest true "Назначение"
// @Success 201 {object} models.InternshipAssignment
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), h.GetDB(c), principal, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// List godoc
// @Summary Список назначений
// @Description Руководитель видит только своих стажеров
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.InternshipAssignment
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	assignments, err := h.assignmentService.List(c.Request.Context(), h.GetDB(c), principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}
