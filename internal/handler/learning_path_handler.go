package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/learningpath-api/internal/dto"
	"github.com/noah-isme/learningpath-api/internal/models"
	appErrors "github.com/noah-isme/learningpath-api/pkg/errors"
	"github.com/noah-isme/learningpath-api/pkg/response"
)

type learningPathService interface {
	ListPaths(ctx context.Context, userID int64) ([]models.PathSummary, bool, error)
	GetPathDetail(ctx context.Context, pathID, userID int64) ([]models.LineRecord, error)
	HasAnyPath(ctx context.Context, userID int64) (bool, error)
	Index(ctx context.Context, filter models.LearningPathFilter) ([]models.PathIndexRow, *models.Pagination, error)
	ExportPaths(ctx context.Context, userID int64, format string) ([]byte, string, error)
}

// LearningPathHandler exposes learning path progress over REST.
type LearningPathHandler struct {
	service   learningPathService
	validator *validator.Validate
}

// NewLearningPathHandler constructs the handler.
func NewLearningPathHandler(service learningPathService, validate *validator.Validate) *LearningPathHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &LearningPathHandler{service: service, validator: validate}
}

// List godoc
// @Summary List the caller's learning paths with progress
// @Tags LearningPaths
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /learning-paths [get]
func (h *LearningPathHandler) List(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		return
	}
	summaries, hit, err := h.service.ListPaths(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil, withMeta(c, hit))
}

// Exists godoc
// @Summary Whether the caller has any learning path assignment
// @Tags LearningPaths
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /learning-paths/exists [get]
func (h *LearningPathHandler) Exists(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		return
	}
	exists, err := h.service.HasAnyPath(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"exists": exists}, nil)
}

// Detail godoc
// @Summary Per-line progress of a learning path
// @Tags LearningPaths
// @Produce json
// @Param id path int true "Learning path ID"
// @Param userId query int false "User ID, defaults to the caller"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /learning-paths/{id}/lines [get]
func (h *LearningPathHandler) Detail(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		return
	}
	pathID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var query dto.LearningPathDetailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Validation(err, "userId must be a positive integer"))
		return
	}
	if err := h.validator.Struct(query); err != nil {
		response.Error(c, appErrors.Validation(err, "userId must be a positive integer"))
		return
	}
	userID := query.UserID
	if userID == 0 {
		userID = claims.UserID
	}
	if !claims.CanActFor(userID) {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot view another user's progress"))
		return
	}

	records, err := h.service.GetPathDetail(c.Request.Context(), pathID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Export godoc
// @Summary Download the caller's learning paths
// @Tags LearningPaths
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /learning-paths/export [get]
func (h *LearningPathHandler) Export(c *gin.Context) {
	claims := currentUser(c)
	if claims == nil {
		return
	}
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.service.ExportPaths(c.Request.Context(), claims.UserID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := "learning-paths.csv"
	if contentType == "application/pdf" {
		filename = "learning-paths.pdf"
	}
	response.Attachment(c, contentType, filename, payload)
}

// Index godoc
// @Summary List every learning path (administrators)
// @Tags LearningPaths
// @Produce json
// @Param search query string false "Name filter"
// @Param published query bool false "Published filter"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param sortBy query string false "Sort column" Enums(id, name, startdate, enddate, credit)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} response.Envelope
// @Router /admin/learning-paths [get]
func (h *LearningPathHandler) Index(c *gin.Context) {
	var query dto.LearningPathIndexQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid query parameters"))
		return
	}
	if err := h.validator.Struct(query); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid query parameters"))
		return
	}

	rows, pagination, err := h.service.Index(c.Request.Context(), models.LearningPathFilter{
		Search:    query.Search,
		Published: query.Published,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}
