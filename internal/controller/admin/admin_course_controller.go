package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/learnhub/internal/controller"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/service"
)

// AdminCourseController handles users, courses and enrollments for administrators.
type AdminCourseController struct {
	courseService service.CourseService
}

// NewAdminCourseController creates a new AdminCourseController.
func NewAdminCourseController(cs service.CourseService) *AdminCourseController {
	return &AdminCourseController{courseService: cs}
}

// RegisterRoutes mounts the course routes on an admin-only group.
func (c *AdminCourseController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", c.CreateUser)
	rg.POST("/courses", c.CreateCourse)
	rg.GET("/courses", c.ListCourses)
	rg.POST("/courses/:courseId/enrollments", c.EnrollUser)
	rg.DELETE("/courses/:courseId/enrollments/:userId", c.RevokeEnrollment)
}

// CreateUser godoc
// @Summary (Admin) Create a user
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /admin/users [post]
func (c *AdminCourseController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	user, err := c.courseService.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.CourseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/courses [post]
func (c *AdminCourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	course, err := c.courseService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// ListCourses godoc
// @Summary (Admin) List courses
// @Tags Admin - Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CourseDTO
// @Router /admin/courses [get]
func (c *AdminCourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// EnrollUser godoc
// @Summary (Admin) Enroll a user in a course
// @Description Re-enrolling a revoked user reactivates the existing enrollment.
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param enrollment body dto.EnrollUserRequest true "User to enroll"
// @Success 201 {object} dto.EnrollmentDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course or user not found"
// @Router /admin/courses/{courseId}/enrollments [post]
func (c *AdminCourseController) EnrollUser(ctx *gin.Context) {
	courseID, ok := controller.ParseID(ctx, "courseId")
	if !ok {
		return
	}
	var req dto.EnrollUserRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	e, err := c.courseService.EnrollUser(ctx.Request.Context(), courseID, req.UserID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, e)
}

// RevokeEnrollment godoc
// @Summary (Admin) Revoke a user's enrollment
// @Tags Admin - Courses
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param userId path int true "User ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "No active enrollment"
// @Router /admin/courses/{courseId}/enrollments/{userId} [delete]
func (c *AdminCourseController) RevokeEnrollment(ctx *gin.Context) {
	courseID, ok := controller.ParseID(ctx, "courseId")
	if !ok {
		return
	}
	userID, ok := controller.ParseID(ctx, "userId")
	if !ok {
		return
	}
	if err := c.courseService.RevokeEnrollment(ctx.Request.Context(), courseID, userID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
