package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/logger"
	"internship_backend/internal/middleware"
	"internship_backend/internal/models"
	"internship_backend/internal/services"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

const (
	attachmentField = "attachment"
	// запас на поля формы и границы multipart сверх размера файла
	multipartOverhead = 1 << 20
)

type AttendanceHandler struct {
	*BaseHandler
	attendanceService services.AttendanceService
	maxFileSize       int64
}

func NewAttendanceHandler(base *BaseHandler, attendanceService services.AttendanceService, maxFileSize int64) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       base,
		attendanceService: attendanceService,
		maxFileSize:       maxFileSize,
	}
}

func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	attendance := rg.Group("/attendance")
	attendance.Use(authMW)
	{
		attendance.POST("/submit", middleware.RequireRoles(models.UserRoleStudent), h.Submit)
		attendance.GET("/student", h.ListMine)
		attendance.PATCH("/:id/review", middleware.RequireRoles(models.UserRoleSupervisor), h.Review)
	}
}

// Submit godoc
// @Summary Отправка ежедневного журнала
// @Tags attendance
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param date formData string true "Дата YYYY-MM-DD"
// @Param time_in formData string true "Начало HH:MM"
// @Param time_out formData string true "Конец HH:MM"
// @Param log_text formData string true "Описание работы"
// @Param attachment formData file false "jpeg, jpg, png, pdf, doc, docx"
// @Success 201 {object} dto.SubmitLogResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Failure 415 {object} apperrors.ErrorResponse
// @Router /attendance/submit [post]
func (h *AttendanceHandler) Submit(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	if h.maxFileSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+multipartOverhead)
	}
	if err := c.Request.ParseMultipartForm(h.maxFileSize + multipartOverhead); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apperrors.HandleError(c, apperrors.ErrFileTooLarge)
			return
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid form data"))
		return
	}

	var req dto.SubmitLogRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	var attachment *dto.Attachment
	header, err := c.FormFile(attachmentField)
	switch {
	case err == nil:
		file, err := header.Open()
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		defer file.Close()

		attachment = &dto.Attachment{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// вложение необязательно
	default:
		logger.CtxWarn(c.Request.Context(), "failed to read attachment", "error", err.Error())
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid attachment"))
		return
	}

	log, err := h.attendanceService.Submit(c.Request.Context(), h.GetDB(c), principal.UserID, &req, attachment)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitLogResponse{
		Message: services.MsgLogSubmitted,
		Log:     log,
	})
}

// ListMine godoc
// @Summary Журналы текущего пользователя
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "С даты YYYY-MM-DD"
// @Param endDate query string false "По дату YYYY-MM-DD"
// @Param status query string false "pending, approved, rejected"
// @Success 200 {array} models.DailyLog
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /attendance/student [get]
func (h *AttendanceHandler) ListMine(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var query dto.LogListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	logs, err := h.attendanceService.ListForStudent(c.Request.Context(), h.GetDB(c), principal.UserID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// Review godoc
// @Summary Решение руководителя по журналу
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID журнала"
// @Param request body dto.ReviewLogRequest true "approved или rejected"
// @Success 200 {object} models.DailyLog
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /attendance/{id}/review [patch]
func (h *AttendanceHandler) Review(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := h.UUIDParam(c, "id", apperrors.ErrLogNotFound)
	if !ok {
		return
	}

	var req dto.ReviewLogRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	log, err := h.attendanceService.Review(c.Request.Context(), h.GetDB(c), principal, id, models.LogStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}
