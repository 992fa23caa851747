package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/services"
	"github.com/vnkhanh/skillplus-backend/utils"
	"github.com/vnkhanh/skillplus-backend/validators"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input validators.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, apperror.Input("Request body must be valid JSON"))
		return
	}

	res, err := ctl.auth.Login(c.Request.Context(), input)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.OK(c, "Login successful", res)
}

// Register handles POST /api/users.
func (ctl *AuthController) Register(c *gin.Context) {
	var input validators.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, apperror.Input("Request body must be valid JSON"))
		return
	}

	user, err := ctl.auth.Register(c.Request.Context(), input)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, "User registered successfully", user)
}
