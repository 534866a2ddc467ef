package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/app/services"
	"github.com/deniz/examhub/internal/middleware"
)

// ExamController handles exam catalog operations
type ExamController struct {
	examService services.ExamService
	logger      zerolog.Logger
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService, logger zerolog.Logger) *ExamController {
	return &ExamController{
		examService: examService,
		logger:      logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name),
		})
		return 0, false
	}
	return id, true
}

func callerID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return 0, false
	}
	return userID, true
}

// CreateExam creates a new exam
// @Summary Create an exam
// @Description Creates an exam owned by the calling faculty member
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam data"
// @Success 201 {object} dto.APIResponse{data=dto.ExamResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: middleware.HandleValidationError(err)})
		return
	}

	resp, err := c.examService.CreateExam(ctx.Request.Context(), facultyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetAllExams lists every exam
// @Summary List exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ExamListResponse}
// @Router /exams [get]
func (c *ExamController) GetAllExams(ctx *gin.Context) {
	resp, err := c.examService.GetAllExams(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetMyExams lists exams the calling faculty member created
// @Summary List own exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ExamListResponse}
// @Router /exams/mine [get]
func (c *ExamController) GetMyExams(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}

	resp, err := c.examService.GetFacultyExams(ctx.Request.Context(), facultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetExamByID retrieves one exam
// @Summary Get an exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExamResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id} [get]
func (c *ExamController) GetExamByID(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.examService.GetExamByID(ctx.Request.Context(), examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateExam updates an exam the caller owns
// @Summary Update an exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.UpdateExamRequest true "Exam data"
// @Success 200 {object} dto.APIResponse{data=dto.ExamResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: middleware.HandleValidationError(err)})
		return
	}

	resp, err := c.examService.UpdateExam(ctx.Request.Context(), facultyID, examID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteExam deletes an exam the caller owns
// @Summary Delete an exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.examService.DeleteExam(ctx.Request.Context(), facultyID, examID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Exam deleted"}})
}
