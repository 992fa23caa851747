package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/vnkhanh/skillplus-backend/apperror"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	translator, _ = ut.New(en.New()).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names so field paths match the payload.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerTranslation("required", "{0} is required")
	registerTranslation("url", "{0} must be a valid URL")
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// fieldErrors runs struct validation and returns one FieldError per failing
// field, keyed by its path below the root struct.
func fieldErrors(v interface{}) []apperror.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperror.FieldError{{Field: "", Message: err.Error()}}
	}

	flds := make([]apperror.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		flds = append(flds, apperror.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: messageFor(fe),
		})
	}
	return flds
}

// fieldPath drops the root struct name: "CourseInput.lessons[0].title" -> "lessons[0].title".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(fe validator.FieldError) string {
	if fe.Tag() == "min" && fe.Kind() == reflect.Slice && fe.Param() == "1" {
		return "at least one " + singular(fe.Field()) + " is required"
	}
	return fe.Translate(translator)
}

func singular(field string) string {
	return strings.TrimSuffix(field, "s")
}
