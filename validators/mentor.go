package validators

import (
	"strings"

	"github.com/vnkhanh/skillplus-backend/apperror"
)

type MentorForm struct {
	Name           string
	Company        string
	Specialization string
}

type MentorInput struct {
	Name           string  `json:"name" validate:"required,max=150"`
	Company        *string `json:"company" validate:"omitempty,max=150"`
	Specialization *string `json:"specialization" validate:"omitempty,max=150"`
}

// MentorUpdateForm holds the PATCH form fields; nil means the field was not sent.
type MentorUpdateForm struct {
	Name           *string
	Company        *string
	Specialization *string
	IsActive       *string
}

// MentorUpdate is a validated partial update. Nil fields are left unchanged.
type MentorUpdate struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=150"`
	Company        *string `json:"company" validate:"omitempty,max=150"`
	Specialization *string `json:"specialization" validate:"omitempty,max=150"`
	IsActive       *bool   `json:"is_active"`
	PhotoURL       *string `json:"photo_url"`
}

func (u MentorUpdate) Empty() bool {
	return u.Name == nil && u.Company == nil && u.Specialization == nil && u.IsActive == nil && u.PhotoURL == nil
}

func ParseMentor(form MentorForm) (*MentorInput, error) {
	in := &MentorInput{
		Name:           strings.TrimSpace(form.Name),
		Company:        optional(form.Company),
		Specialization: optional(form.Specialization),
	}
	if flds := fieldErrors(in); len(flds) > 0 {
		return nil, apperror.Validation(flds...)
	}
	return in, nil
}

// ParseMentorUpdate treats empty text fields as "not sent".
func ParseMentorUpdate(form MentorUpdateForm) (*MentorUpdate, error) {
	upd := &MentorUpdate{}
	if form.Name != nil {
		upd.Name = optional(*form.Name)
	}
	if form.Company != nil {
		upd.Company = optional(*form.Company)
	}
	if form.Specialization != nil {
		upd.Specialization = optional(*form.Specialization)
	}

	var flds []apperror.FieldError
	if form.IsActive != nil {
		switch strings.TrimSpace(*form.IsActive) {
		case "true":
			v := true
			upd.IsActive = &v
		case "false":
			v := false
			upd.IsActive = &v
		case "":
		default:
			flds = append(flds, apperror.FieldError{Field: "is_active", Message: "is_active must be true or false"})
		}
	}

	flds = append(flds, fieldErrors(upd)...)
	if len(flds) > 0 {
		return nil, apperror.Validation(flds...)
	}
	return upd, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
