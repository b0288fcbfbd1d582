package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"internship_backend/pkg/apperrors"
)

// FileHandler раздает вложения из локального хранилища по /uploads/*
type FileHandler struct {
	*BaseHandler
	root http.FileSystem
}

func NewFileHandler(base *BaseHandler, basePath string) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		root:        http.Dir(basePath),
	}
}

func (h *FileHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/uploads/*filepath", h.ServeFile)
	r.HEAD("/uploads/*filepath", h.ServeFile)
}

// ServeFile отдает файл; каталоги и отсутствующие файлы дают 404
func (h *FileHandler) ServeFile(c *gin.Context) {
	name := path.Clean("/" + strings.TrimPrefix(c.Param("filepath"), "/"))

	f, err := h.root.Open(name)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("file", "File not found"))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		apperrors.HandleError(c, apperrors.NewNotFoundError("file", "File not found"))
		return
	}

	c.Header("X-Content-Type-Options", "nosniff")
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
