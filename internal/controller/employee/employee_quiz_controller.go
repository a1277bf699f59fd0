package employee

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/learnhub/internal/controller"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/service"
)

// EmployeeQuizController handles quizzes from the employee's side.
type EmployeeQuizController struct {
	quizService       service.EmployeeQuizService
	submissionService service.QuizSubmissionService
	feedbackService   service.FeedbackService
}

// NewEmployeeQuizController creates a new EmployeeQuizController.
func NewEmployeeQuizController(qs service.EmployeeQuizService, ss service.QuizSubmissionService, fs service.FeedbackService) *EmployeeQuizController {
	return &EmployeeQuizController{quizService: qs, submissionService: ss, feedbackService: fs}
}

// RegisterRoutes mounts the employee routes on a group that already requires authentication.
func (c *EmployeeQuizController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quizzes", c.ListMyQuizzes)
	rg.GET("/quiz/:quizId", c.GetQuiz)
	rg.POST("/quiz/:quizId/submit", c.SubmitQuiz)
	rg.GET("/quiz/:quizId/result", c.GetMyResult)
	rg.GET("/quiz/:quizId/feedback", c.GetFeedback)
}

// SubmitQuiz godoc
// @Summary (Employee) Submit answers for a quiz
// @Description Submits exactly 10 question/answer pairs. A quiz can be submitted once per user. Entries that do not match the quiz are ignored and count as wrong.
// @Tags Employee - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Param submission body dto.SubmitQuizRequest true "Chosen answers"
// @Success 201 {object} dto.QuizSubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Quiz not ready, wrong number of responses or malformed body"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the quiz's course"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 409 {object} dto.ConflictResponse "Quiz already submitted"
// @Router /employee/quiz/{quizId}/submit [post]
func (c *EmployeeQuizController) SubmitQuiz(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	var req dto.SubmitQuizRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}

	res, err := c.submissionService.SubmitQuiz(ctx.Request.Context(), userID, quizID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, res)
}

// ListMyQuizzes godoc
// @Summary (Employee) List my quizzes
// @Description Quizzes of every course the caller is enrolled in, with readiness and the caller's score if already submitted.
// @Tags Employee - Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /employee/quizzes [get]
func (c *EmployeeQuizController) ListMyQuizzes(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	quizzes, err := c.quizService.ListMyQuizzes(ctx.Request.Context(), userID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary (Employee) Get a quiz to answer
// @Description Questions and answers of a quiz, without correctness flags.
// @Tags Employee - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.EmployeeQuizDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /employee/quiz/{quizId} [get]
func (c *EmployeeQuizController) GetQuiz(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetQuizForEmployee(ctx.Request.Context(), userID, quizID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// GetMyResult godoc
// @Summary (Employee) Get my stored result for a quiz
// @Tags Employee - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.QuizSubmissionDetailDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No submission for this quiz"
// @Router /employee/quiz/{quizId}/result [get]
func (c *EmployeeQuizController) GetMyResult(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	res, err := c.submissionService.GetMySubmission(ctx.Request.Context(), userID, quizID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// GetFeedback godoc
// @Summary (Employee) AI study feedback on a submitted quiz
// @Description Explains the missed questions of the caller's submission. Requires a configured Gemini API key.
// @Tags Employee - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.FeedbackDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No submission for this quiz"
// @Failure 503 {object} dto.ErrorResponse "Feedback unavailable"
// @Router /employee/quiz/{quizId}/feedback [get]
func (c *EmployeeQuizController) GetFeedback(ctx *gin.Context) {
	userID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	res, err := c.feedbackService.GetSubmissionFeedback(ctx.Request.Context(), userID, quizID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
