package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/services"
	"github.com/vnkhanh/skillplus-backend/storage"
	"github.com/vnkhanh/skillplus-backend/utils"
	"github.com/vnkhanh/skillplus-backend/validators"
)

type CourseController struct {
	courses   *services.CourseService
	maxUpload int64
}

func NewCourseController(courses *services.CourseService, maxUpload int64) *CourseController {
	return &CourseController{courses: courses, maxUpload: maxUpload}
}

// CreateCourse handles POST /api/courses (multipart). The session has already
// been checked by RequireRoles.
func (ctl *CourseController) CreateCourse(c *gin.Context) {
	if _, err := c.MultipartForm(); err != nil {
		utils.Error(c, apperror.Input("Request must be multipart/form-data"))
		return
	}

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		utils.Error(c, apperror.Input("thumbnail is required"))
		return
	}
	lessons := c.PostForm("lessons")
	if strings.TrimSpace(lessons) == "" {
		utils.Error(c, apperror.Input("lessons is required"))
		return
	}

	thumbnail, err := storage.ReadImage(fh, ctl.maxUpload)
	if err != nil {
		utils.Error(c, err)
		return
	}

	form := validators.CourseForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Lessons:     lessons,
		MentorID:    c.PostForm("mentor_id"),
	}
	course, err := ctl.courses.Create(c.Request.Context(), form, thumbnail)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, "Course created successfully", course)
}

// GetCourses: GET /api/courses?page=&limit=&search=&sortBy=&sortOrder=
func (ctl *CourseController) GetCourses(c *gin.Context) {
	q := validators.ParseListQuery(
		c.Query("page"), c.Query("limit"), c.Query("search"),
		c.Query("sortBy"), c.Query("sortOrder"),
		repository.CourseSortColumns, "created_at",
	)

	courses, page, err := ctl.courses.List(c.Request.Context(), q)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Paginated(c, courses, page)
}

func (ctl *CourseController) GetCourseDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, apperror.Input("Invalid course id"))
		return
	}

	course, err := ctl.courses.Detail(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.OK(c, "", course)
}
