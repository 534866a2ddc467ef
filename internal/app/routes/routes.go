package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/deniz/examhub/internal/app/controllers"
	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	examController *controllers.ExamController,
	questionController *controllers.QuestionController,
	attemptController *controllers.AttemptController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.GetProfile)

		exams := authenticated.Group("/exams")
		{
			// Readable by every authenticated user; students need the
			// catalog and the question sheets to take exams
			exams.GET("", examController.GetAllExams)
			exams.GET("/:id", examController.GetExamByID)
			exams.GET("/:id/questions", questionController.GetExamQuestions)

			// Faculty-only exam management
			examsFaculty := exams.Group("")
			examsFaculty.Use(authMiddleware.RoleRequired(string(models.RoleFaculty)))
			{
				examsFaculty.POST("", examController.CreateExam)
				examsFaculty.GET("/mine", examController.GetMyExams)
				examsFaculty.PUT("/:id", examController.UpdateExam)
				examsFaculty.DELETE("/:id", examController.DeleteExam)
				examsFaculty.POST("/:id/questions", questionController.AddQuestion)
				examsFaculty.GET("/:id/results", attemptController.GetExamResults)
			}

			// Student-only attempt lifecycle
			examsStudent := exams.Group("")
			examsStudent.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				examsStudent.POST("/:id/attempts", attemptController.StartAttempt)
				examsStudent.POST("/:id/attempts/submit", attemptController.SubmitAttempt)
			}
		}

		questions := authenticated.Group("/questions")
		questions.Use(authMiddleware.RoleRequired(string(models.RoleFaculty)))
		{
			questions.PUT("/:questionId", questionController.UpdateQuestion)
			questions.DELETE("/:questionId", questionController.DeleteQuestion)
		}

		results := authenticated.Group("/results")
		results.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			results.GET("/mine", attemptController.GetMyResults)
			results.GET("/:id", attemptController.GetResultDetail)
		}
	}
}
