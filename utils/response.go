package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vnkhanh/skillplus-backend/apperror"
)

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination interface{}       `json:"pagination,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func Paginated(c *gin.Context, data interface{}, pagination interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: pagination})
}

// Error writes the classified error and aborts the chain. Only the sanitized
// message reaches the client; the cause is logged.
func Error(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	body := envelope{Success: false, Message: "Internal server error"}

	appErr, ok := apperror.As(err)
	if ok && appErr.Message != "" {
		body.Message = appErr.Message
	}
	if ok && len(appErr.Fields) > 0 {
		body.Errors = make(map[string]string, len(appErr.Fields))
		for _, f := range appErr.Fields {
			if _, dup := body.Errors[f.Field]; !dup {
				body.Errors[f.Field] = f.Message
			}
		}
	}

	log := zerolog.Ctx(c.Request.Context())
	ev := log.Debug()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Str("kind", apperror.KindOf(err).String()).Int("status", status).Msg("request failed")

	c.AbortWithStatusJSON(status, body)
}
