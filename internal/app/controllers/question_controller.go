package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/app/services"
	"github.com/deniz/examhub/internal/middleware"
)

// QuestionController handles question operations
type QuestionController struct {
	questionService services.QuestionService
	logger          zerolog.Logger
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService, logger zerolog.Logger) *QuestionController {
	return &QuestionController{
		questionService: questionService,
		logger:          logger,
	}
}

// AddQuestion adds a question to an exam
// @Summary Add a question
// @Description Adds a multiple-choice question to an exam the caller owns
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id}/questions [post]
func (c *QuestionController) AddQuestion(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: middleware.HandleValidationError(err)})
		return
	}

	resp, err := c.questionService.AddQuestion(ctx.Request.Context(), facultyID, examID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetExamQuestions lists an exam's questions
// @Summary List exam questions
// @Description Lists questions of an exam; correct answers appear only for the exam's owner
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionListResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id}/questions [get]
func (c *QuestionController) GetExamQuestions(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.questionService.GetExamQuestions(ctx.Request.Context(), userID, examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateQuestion updates a question
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Question data"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /questions/{questionId} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: middleware.HandleValidationError(err)})
		return
	}

	resp, err := c.questionService.UpdateQuestion(ctx.Request.Context(), facultyID, questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteQuestion deletes a question
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /questions/{questionId} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}
	questionID, ok := parseIDParam(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), facultyID, questionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Question deleted"}})
}
