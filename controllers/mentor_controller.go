package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/services"
	"github.com/vnkhanh/skillplus-backend/storage"
	"github.com/vnkhanh/skillplus-backend/utils"
	"github.com/vnkhanh/skillplus-backend/validators"
)

const mentorPhotoField = "photo_url"

type MentorController struct {
	mentors   *services.MentorService
	maxUpload int64
}

func NewMentorController(mentors *services.MentorService, maxUpload int64) *MentorController {
	return &MentorController{mentors: mentors, maxUpload: maxUpload}
}

func (ctl *MentorController) CreateMentor(c *gin.Context) {
	if _, err := c.MultipartForm(); err != nil {
		utils.Error(c, apperror.Input("Request must be multipart/form-data"))
		return
	}

	fh, err := c.FormFile(mentorPhotoField)
	if err != nil {
		utils.Error(c, apperror.Input("photo_url is required"))
		return
	}
	photo, err := storage.ReadImage(fh, ctl.maxUpload)
	if err != nil {
		utils.Error(c, err)
		return
	}

	form := validators.MentorForm{
		Name:           c.PostForm("name"),
		Company:        c.PostForm("company"),
		Specialization: c.PostForm("specialization"),
	}
	mentor, err := ctl.mentors.Create(c.Request.Context(), form, photo)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, "Mentor created successfully", mentor)
}

func (ctl *MentorController) GetMentors(c *gin.Context) {
	q := validators.ParseListQuery(
		c.Query("page"), c.Query("limit"), c.Query("search"),
		c.Query("sortBy"), c.Query("sortOrder"),
		repository.MentorSortColumns, "created_at",
	)

	mentors, page, err := ctl.mentors.List(c.Request.Context(), q)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Paginated(c, mentors, page)
}

// UpdateMentor handles PATCH /api/mentors/:id. Fields that are absent from
// the form are left unchanged.
func (ctl *MentorController) UpdateMentor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, apperror.Input("Invalid mentor id"))
		return
	}
	if _, err := c.MultipartForm(); err != nil {
		utils.Error(c, apperror.Input("Request must be multipart/form-data"))
		return
	}

	form := validators.MentorUpdateForm{
		Name:           postFormPtr(c, "name"),
		Company:        postFormPtr(c, "company"),
		Specialization: postFormPtr(c, "specialization"),
		IsActive:       postFormPtr(c, "is_active"),
	}

	var photo *storage.File
	fh, err := c.FormFile(mentorPhotoField)
	switch {
	case err == nil:
		f, err := storage.ReadImage(fh, ctl.maxUpload)
		if err != nil {
			utils.Error(c, err)
			return
		}
		photo = &f
	case !errors.Is(err, http.ErrMissingFile):
		utils.Error(c, apperror.Input("photo_url could not be read"))
		return
	}

	mentor, err := ctl.mentors.Update(c.Request.Context(), id, form, photo)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.OK(c, "Mentor updated successfully", mentor)
}

func (ctl *MentorController) DeleteMentor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, apperror.Input("Invalid mentor id"))
		return
	}
	if err := ctl.mentors.Delete(c.Request.Context(), id); err != nil {
		utils.Error(c, err)
		return
	}
	utils.OK(c, "Mentor deleted successfully", nil)
}

func postFormPtr(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}
