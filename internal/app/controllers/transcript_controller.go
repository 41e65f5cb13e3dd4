package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derya/gradepoint/internal/app/models/dto"
	"github.com/derya/gradepoint/internal/app/services"
	"github.com/derya/gradepoint/internal/middleware"
)

// TranscriptController serves computed summaries and the fixed grade scale
type TranscriptController struct {
	recordService *services.RecordService
	logger        zerolog.Logger
}

// NewTranscriptController creates a new TranscriptController
func NewTranscriptController(recordService *services.RecordService, logger zerolog.Logger) *TranscriptController {
	return &TranscriptController{
		recordService: recordService,
		logger:        logger,
	}
}

// GetTranscript returns the full record with every summary computed
// @Summary Get the transcript
// @Description Returns every semester with its computed summary plus the cross-semester aggregate (CGPA, total credits, backlog)
// @Tags transcript
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TranscriptResponse} "Transcript"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transcript [get]
func (c *TranscriptController) GetTranscript(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	transcript, err := c.recordService.GetTranscript(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to build transcript")
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.TranscriptResponse{
		Semesters: make([]dto.SemesterSummaryResponse, 0, len(transcript.Semesters)),
		Aggregate: transcript.Aggregate,
	}
	for i, semester := range transcript.Semesters {
		resp.Semesters = append(resp.Semesters, dto.SemesterSummaryResponse{
			Semester: dto.FromSemester(semester),
			Summary:  transcript.Summaries[i],
		})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetGradeScale returns the fixed grade table
// @Summary Get the grade scale
// @Description Returns the fixed letter-to-points table and the pass mark. Public; clients use it to populate the grade selector.
// @Tags transcript
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GradeScaleResponse} "Grade scale"
// @Router /grade-scale [get]
func (c *TranscriptController) GetGradeScale(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewGradeScaleResponse()))
}
