package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/derya/gradepoint/internal/app/models/dto"
	"github.com/derya/gradepoint/internal/app/services"
	"github.com/derya/gradepoint/internal/middleware"
)

// CourseController handles course operations within semesters
type CourseController struct {
	recordService *services.RecordService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(recordService *services.RecordService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		recordService: recordService,
		logger:        logger,
	}
}

// AddCourse appends a blank course to a semester
// @Summary Add a course
// @Description Appends a blank course to the semester: empty code and title, unset credit, best grade preselected
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Semester ID"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course added"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Semester belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id}/courses [post]
func (c *CourseController) AddCourse(ctx *gin.Context) {
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

	course, err := c.recordService.AddCourse(ctx.Request.Context(), semesterID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Int64("courseID", course.ID).Msg("Course added")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromCourse(course)))
}

// UpdateCourse edits a course
// @Summary Update a course
// @Description Edits the code, title, credit and grade of a course. A null credit stores the unset sentinel and excludes the course from aggregation.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course fields"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format, unrecognized grade or unusable credit"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Course belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	courseID, err := pathID(ctx, "id")
	if err != nil {
		badID(ctx, "Invalid course ID")
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.recordService.UpdateCourse(ctx.Request.Context(), courseID, userID, services.CourseEdit{
		Code:   req.Code,
		Title:  req.Title,
		Credit: req.Credit,
		Grade:  req.Grade,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCourse(course)))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Description Removes a course. The last course of a semester may be removed.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Course belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		unauthorized(ctx)
		return
	}

	courseID, err := pathID(ctx, "id")
	if err != nil {
		badID(ctx, "Invalid course ID")
		return
	}

	if err := c.recordService.DeleteCourse(ctx.Request.Context(), courseID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Int64("courseID", courseID).Msg("Course deleted")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course deleted"}))
}
