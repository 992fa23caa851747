package validators

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vnkhanh/skillplus-backend/apperror"
)

// CourseForm holds the raw scalar fields of a course submission as received
// from the multipart form.
type CourseForm struct {
	Title       string
	Description string
	Price       string
	Lessons     string
	MentorID    string
}

type ModuleInput struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Order    *int   `json:"order" validate:"omitempty,min=1"`
	VideoURL string `json:"video_url" validate:"omitempty,url"`
}

type LessonInput struct {
	Title   string        `json:"title" validate:"required"`
	Order   *int          `json:"order" validate:"omitempty,min=1"`
	Modules []ModuleInput `json:"modules" validate:"required,min=1,dive"`
}

// CourseInput is a validated course submission.
type CourseInput struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Price       float64       `json:"price" validate:"gte=1,lte=9999999999.99"`
	Lessons     []LessonInput `json:"lessons" validate:"required,min=1,dive"`
	MentorID    *uuid.UUID    `json:"mentor_id"`
}

// DecodeLessons turns the JSON encoded lessons field into typed values.
// Unknown fields and trailing data are rejected.
func DecodeLessons(raw string) ([]LessonInput, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()

	var lessons []LessonInput
	if err := dec.Decode(&lessons); err != nil {
		return nil, apperror.Input("lessons must be a JSON array of lessons: " + jsonProblem(err))
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, apperror.Input("lessons must contain a single JSON array")
	}

	for i := range lessons {
		lessons[i].Title = strings.TrimSpace(lessons[i].Title)
		for j := range lessons[i].Modules {
			m := &lessons[i].Modules[j]
			m.Title = strings.TrimSpace(m.Title)
			m.Content = strings.TrimSpace(m.Content)
			m.VideoURL = strings.TrimSpace(m.VideoURL)
		}
	}
	return lessons, nil
}

// ParseCourse decodes and validates a course submission. Every failing field
// is reported, not only the first one.
func ParseCourse(form CourseForm) (*CourseInput, error) {
	lessons, err := DecodeLessons(form.Lessons)
	if err != nil {
		return nil, err
	}

	in := &CourseInput{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Lessons:     lessons,
	}

	var flds []apperror.FieldError
	price, ok := parsePrice(form.Price)
	if ok {
		in.Price = price
	}

	if id := strings.TrimSpace(form.MentorID); id != "" {
		mentorID, err := uuid.Parse(id)
		if err != nil {
			flds = append(flds, apperror.FieldError{Field: "mentor_id", Message: "mentor_id must be a valid UUID"})
		} else {
			in.MentorID = &mentorID
		}
	}

	for _, fe := range fieldErrors(in) {
		if fe.Field == "price" && !ok {
			continue
		}
		flds = append(flds, fe)
	}
	if !ok {
		flds = append([]apperror.FieldError{{Field: "price", Message: "price must be a number"}}, flds...)
	}

	if len(flds) > 0 {
		return nil, apperror.Validation(flds...)
	}
	return in, nil
}

func parsePrice(raw string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}
	return price, true
}

func jsonProblem(err error) string {
	return strings.TrimPrefix(err.Error(), "json: ")
}
