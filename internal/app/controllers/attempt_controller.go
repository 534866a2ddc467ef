package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/app/services"
	"github.com/deniz/examhub/internal/middleware"
	"github.com/deniz/examhub/internal/pkg/helpers"
)

// AttemptController handles the attempt lifecycle endpoints
type AttemptController struct {
	attemptService services.AttemptService
	logger         zerolog.Logger
}

// NewAttemptController creates a new AttemptController
func NewAttemptController(attemptService services.AttemptService, logger zerolog.Logger) *AttemptController {
	return &AttemptController{
		attemptService: attemptService,
		logger:         logger,
	}
}

// StartAttempt opens an attempt on an exam
// @Summary Start an exam attempt
// @Description Opens an attempt for the calling student; only one open attempt per exam is allowed
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 201 {object} dto.APIResponse{data=dto.AttemptResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.attemptService.StartAttempt(ctx.Request.Context(), studentID, examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// SubmitAttempt submits and grades the caller's active attempt
// @Summary Submit an exam attempt
// @Description Grades the submitted answers against the current question set and completes the attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.SubmitAttemptRequest true "Selected options keyed by question ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResultResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id}/attempts/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: middleware.HandleValidationError(err)})
		return
	}

	resp, err := c.attemptService.SubmitAttempt(ctx.Request.Context(), studentID, examID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetMyResults lists the caller's completed attempts
// @Summary List own results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ResultListResponse}
// @Router /results/mine [get]
func (c *AttemptController) GetMyResults(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.attemptService.GetStudentResults(ctx.Request.Context(), studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetResultDetail returns one of the caller's results with its answers
// @Summary Get a result with its answer breakdown
// @Description Retrieves one of the caller's completed attempts with the recorded answer for every question
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attempt ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResultDetailResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /results/{id} [get]
func (c *AttemptController) GetResultDetail(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}
	attemptID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.attemptService.GetResultDetail(ctx.Request.Context(), studentID, attemptID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetExamResults lists all completed attempts of one exam for its owner
// @Summary List exam results
// @Description Lists completed attempts of an exam; restricted to the faculty member who created it
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ResultListResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /exams/{id}/results [get]
func (c *AttemptController) GetExamResults(ctx *gin.Context) {
	facultyID, ok := callerID(ctx)
	if !ok {
		return
	}
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.attemptService.GetExamResults(ctx.Request.Context(), facultyID, examID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
