package validators

import (
	"strings"

	"github.com/vnkhanh/skillplus-backend/apperror"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=100,alphanum"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ValidateRegistration normalizes username and email to lower case before
// validating.
func ValidateRegistration(in *RegisterInput) error {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if flds := fieldErrors(in); len(flds) > 0 {
		return apperror.Validation(flds...)
	}
	return nil
}

func ValidateLogin(in *LoginInput) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if flds := fieldErrors(in); len(flds) > 0 {
		return apperror.Validation(flds...)
	}
	return nil
}
