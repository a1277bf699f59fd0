package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/learnhub/internal/controller"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/service"
)

// AdminQuizController handles quiz authoring, validation and submission audits.
type AdminQuizController struct {
	quizService       service.AdminQuizService
	questionService   service.QuestionService
	validationService service.QuizValidationService
	submissionService service.QuizSubmissionService
}

// NewAdminQuizController creates a new AdminQuizController.
func NewAdminQuizController(
	qs service.AdminQuizService,
	qns service.QuestionService,
	vs service.QuizValidationService,
	ss service.QuizSubmissionService,
) *AdminQuizController {
	return &AdminQuizController{
		quizService:       qs,
		questionService:   qns,
		validationService: vs,
		submissionService: ss,
	}
}

// RegisterRoutes mounts the quiz authoring routes on an admin-only group.
func (c *AdminQuizController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quizzes", c.CreateQuiz)
	rg.POST("/quizzes/:quizId/validate", c.ValidateQuiz)
	rg.GET("/quizzes/:quizId/submissions", c.ListSubmissions)
	rg.POST("/quizzes/:quizId/questions", c.AddQuestion)
	rg.DELETE("/questions/:questionId", c.DeleteQuestion)
	rg.POST("/questions/:questionId/validate", c.ValidateQuestion)
	rg.POST("/questions/:questionId/answers", c.AddAnswer)
	rg.PATCH("/answers/:answerId", c.UpdateAnswer)
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz
// @Description Creates a quiz with its questions and answers in one request. Readiness is reported by the validate endpoint, not enforced here.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.CreateQuizRequest true "Quiz definition"
// @Success 201 {object} dto.QuizDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/quizzes [post]
func (c *AdminQuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.CreateQuizRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	quiz, err := c.quizService.CreateQuiz(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// ValidateQuiz godoc
// @Summary (Admin) Validate a quiz
// @Description Reports whether the quiz has exactly 10 questions, each with 4 answers and a single correct one.
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.ValidationResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quizId}/validate [post]
func (c *AdminQuizController) ValidateQuiz(ctx *gin.Context) {
	quizID, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	res, err := c.validationService.ValidateQuiz(ctx.Request.Context(), quizID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// ValidateQuestion godoc
// @Summary (Admin) Validate a question
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Success 200 {object} dto.ValidationResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{questionId}/validate [post]
func (c *AdminQuizController) ValidateQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "questionId")
	if !ok {
		return
	}
	res, err := c.validationService.ValidateQuestion(ctx.Request.Context(), questionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// ListSubmissions godoc
// @Summary (Admin) List submissions of a quiz
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Success 200 {array} dto.SubmissionSummaryDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quizId}/submissions [get]
func (c *AdminQuizController) ListSubmissions(ctx *gin.Context) {
	quizID, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	subs, err := c.submissionService.ListQuizSubmissions(ctx.Request.Context(), quizID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subs)
}

// AddQuestion godoc
// @Summary (Admin) Add a question to a quiz
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "Quiz ID"
// @Param question body dto.CreateQuestionRequest true "Question with answers"
// @Success 201 {object} dto.QuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quizId}/questions [post]
func (c *AdminQuizController) AddQuestion(ctx *gin.Context) {
	quizID, ok := controller.ParseID(ctx, "quizId")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	q, err := c.questionService.AddQuestion(ctx.Request.Context(), quizID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, q)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question and its answers
// @Tags Admin - Quizzes
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{questionId} [delete]
func (c *AdminQuizController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "questionId")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), questionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddAnswer godoc
// @Summary (Admin) Add an answer to a question
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "Question ID"
// @Param answer body dto.CreateAnswerRequest true "Answer"
// @Success 201 {object} dto.AnswerDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{questionId}/answers [post]
func (c *AdminQuizController) AddAnswer(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "questionId")
	if !ok {
		return
	}
	var req dto.CreateAnswerRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	a, err := c.questionService.AddAnswer(ctx.Request.Context(), questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, a)
}

// UpdateAnswer godoc
// @Summary (Admin) Update an answer
// @Description Changes the content or correctness flag of an answer. Omitted fields are left unchanged.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param answerId path int true "Answer ID"
// @Param answer body dto.UpdateAnswerRequest true "Fields to change"
// @Success 200 {object} dto.AnswerDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/answers/{answerId} [patch]
func (c *AdminQuizController) UpdateAnswer(ctx *gin.Context) {
	answerID, ok := controller.ParseID(ctx, "answerId")
	if !ok {
		return
	}
	var req dto.UpdateAnswerRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	a, err := c.questionService.UpdateAnswer(ctx.Request.Context(), answerID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}
