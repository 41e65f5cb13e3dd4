package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derya/gradepoint/internal/app/models/dto"
	"github.com/derya/gradepoint/internal/app/services"
	"github.com/derya/gradepoint/internal/middleware"
	"github.com/derya/gradepoint/internal/pkg/apperrors"
)

// SemesterController handles semester collection operations
type SemesterController struct {
	recordService *services.RecordService
	logger        zerolog.Logger
}

// NewSemesterController creates a new SemesterController
func NewSemesterController(recordService *services.RecordService, logger zerolog.Logger) *SemesterController {
	return &SemesterController{
		recordService: recordService,
		logger:        logger,
	}
}

// ListSemesters lists the user's semesters
// @Summary List semesters
// @Description Returns every semester of the authenticated user, with courses, in display order
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SemesterResponse} "Semesters"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters [get]
func (c *SemesterController) ListSemesters(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	semesters, err := c.recordService.ListSemesters(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list semesters")
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SemesterResponse, 0, len(semesters))
	for _, semester := range semesters {
		responses = append(responses, dto.FromSemester(semester))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// GetSemester returns one semester
// @Summary Get a semester
// @Description Returns one semester with its courses
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterResponse} "Semester"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Semester belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id} [get]
func (c *SemesterController) GetSemester(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	semesterID, err := pathID(ctx, "id")
	if err != nil {
		badID(ctx, "Invalid semester ID")
		return
	}

	semester, err := c.recordService.GetSemester(ctx.Request.Context(), semesterID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromSemester(semester)))
}

// CreateSemester adds a semester
// @Summary Create a semester
// @Description Adds a semester at the end of the collection, seeded with one blank course
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSemesterRequest true "Semester name"
// @Success 201 {object} dto.APIResponse{data=dto.SemesterResponse} "Semester created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /semesters [post]
func (c *SemesterController) CreateSemester(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.recordService.CreateSemester(ctx.Request.Context(), userID, req.Name)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to create semester")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Int64("semesterID", semester.ID).Msg("Semester created")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromSemester(semester)))
}

// UpdateSemester renames a semester
// @Summary Rename a semester
// @Description Updates a semester's display name
// @Tags semesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Param request body dto.UpdateSemesterRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterResponse} "Semester renamed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Semester belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id} [put]
func (c *SemesterController) UpdateSemester(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	semesterID, err := pathID(ctx, "id")
	if err != nil {
		badID(ctx, "Invalid semester ID")
		return
	}

	var req dto.UpdateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	semester, err := c.recordService.RenameSemester(ctx.Request.Context(), semesterID, userID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromSemester(semester)))
}

// DeleteSemester removes a semester
// @Summary Delete a semester
// @Description Removes a semester and all of its courses. The last semester may be removed; the collection can be empty.
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Semester deleted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Semester belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id} [delete]
func (c *SemesterController) DeleteSemester(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	semesterID, err := pathID(ctx, "id")
	if err != nil {
		badID(ctx, "Invalid semester ID")
		return
	}

	if err := c.recordService.DeleteSemester(ctx.Request.Context(), semesterID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Int64("semesterID", semesterID).Msg("Semester deleted")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Semester deleted"}))
}

// GetSemesterSummary returns one semester's computed summary
// @Summary Get a semester summary
// @Description Computes GPA, credits attempted, credits earned and backlog courses for one semester
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterSummaryResponse} "Summary"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Semester belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id}/summary [get]
func (c *SemesterController) GetSemesterSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	semesterID, err := pathID(ctx, "id")
	if err != nil {
		badID(ctx, "Invalid semester ID")
		return
	}

	semester, summary, err := c.recordService.GetSemesterSummary(ctx.Request.Context(), semesterID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SemesterSummaryResponse{
		Semester: dto.FromSemester(semester),
		Summary:  summary,
	}))
}

func pathID(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}

func unauthorized(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func badID(ctx *gin.Context, message string) {
	middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(message))
}
