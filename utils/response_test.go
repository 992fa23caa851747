package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/skillplus-backend/apperror"
)

func errorBody(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorHidesInternalCause(t *testing.T) {
	code, body := errorBody(t, apperror.Upload(errors.New("s3: AccessDenied for key courses/x"), "Failed to upload file"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to upload file", body["message"])

	code, body = errorBody(t, errors.New("pq: relation does not exist"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestErrorListsFields(t *testing.T) {
	code, body := errorBody(t, apperror.Validation(
		apperror.FieldError{Field: "price", Message: "price must be at least 1"},
		apperror.FieldError{Field: "lessons[0].modules[0].video_url", Message: "video_url must be a valid URL"},
	))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]interface{}{
		"price":                           "price must be at least 1",
		"lessons[0].modules[0].video_url": "video_url must be a valid URL",
	}, body["errors"])
}
