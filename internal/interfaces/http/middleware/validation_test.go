package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationTestRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"omitempty,email"`
	Seats  int    `json:"seats" binding:"omitempty,min=1"`
	Status string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req validationTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postJSON(router http.Handler, body string) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHandleBindError(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		name    string
		body    string
		code    string
		field   string
		message string
	}{
		{"missing required field", `{}`, dto.ErrCodeValidation, "name", "name is required"},
		{"bad email", `{"name":"a","email":"nope"}`, dto.ErrCodeValidation, "email", "email must be a valid email address"},
		{"zero skipped by omitempty", `{"name":"a","seats":0}`, "", "", ""},
		{"enum", `{"name":"a","status":"gone"}`, dto.ErrCodeValidation, "status", "status must be one of: active, inactive"},
		{"wrong type", `{"name":"a","seats":"many"}`, dto.ErrCodeValidation, "seats", "seats must be of type int"},
		{"malformed json", `{"name":`, dto.ErrCodeBadRequest, "", ""},
		{"empty body", ``, dto.ErrCodeBadRequest, "", "Request body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postJSON(router, tt.body)
			if tt.code == "" {
				assert.Equal(t, http.StatusOK, w.Code)
				return
			}
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.RequestID)
			if tt.field != "" {
				assert.Equal(t, tt.field, resp.Field)
			}
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error)
			}
		})
	}
}

func TestHandleBindError_ListsEveryField(t *testing.T) {
	router := newValidationRouter()

	_, resp := postJSON(router, `{"email":"nope","status":"gone"}`)

	require.Len(t, resp.Details, 3)
	fields := []string{resp.Details[0].Field, resp.Details[1].Field, resp.Details[2].Field}
	assert.ElementsMatch(t, []string{"name", "email", "status"}, fields)
}
