package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/derya/gradepoint/internal/app/controllers"
	"github.com/derya/gradepoint/internal/app/models/dto"
	"github.com/derya/gradepoint/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	semesterController *controllers.SemesterController,
	courseController *controllers.CourseController,
	transcriptController *controllers.TranscriptController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// The grade scale is fixed and public; clients use it to populate the
	// grade selector before anyone is signed in.
	v1.GET("/grade-scale", transcriptController.GetGradeScale)

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.GetProfile)

		semesters := authenticated.Group("/semesters")
		{
			semesters.GET("", semesterController.ListSemesters)
			semesters.POST("", semesterController.CreateSemester)
			semesters.GET("/:id", semesterController.GetSemester)
			semesters.PUT("/:id", semesterController.UpdateSemester)
			semesters.DELETE("/:id", semesterController.DeleteSemester)
			semesters.GET("/:id/summary", semesterController.GetSemesterSummary)
			semesters.POST("/:id/courses", courseController.AddCourse)
		}

		courses := authenticated.Group("/courses")
		{
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		authenticated.GET("/transcript", transcriptController.GetTranscript)
	}

	// Swagger routes are set up in bootstrap.go already
}
