// internal/handlers/application_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidateStepRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewApplicationHandler(nil, nil)

	r := gin.New()
	r.POST("/applications/validate-step", handler.ValidateStep)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateStepEndpointReportsFieldErrors(t *testing.T) {
	r := newValidateStepRouter()

	w := postJSON(t, r, "/applications/validate-step", gin.H{
		"step": 1,
		"form": gin.H{"firstName": "Jane"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Step   int               `json:"step"`
			Valid  bool              `json:"valid"`
			Errors map[string]string `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.Step)
	assert.False(t, resp.Data.Valid)
	assert.NotContains(t, resp.Data.Errors, "firstName")
	assert.Contains(t, resp.Data.Errors, "lastName")
	assert.Contains(t, resp.Data.Errors, "email")
}

func TestValidateStepEndpointAcceptsCompleteStep(t *testing.T) {
	r := newValidateStepRouter()

	w := postJSON(t, r, "/applications/validate-step", gin.H{
		"step": 6,
		"form": gin.H{
			"whyAdopt":  "Ready for a rescue",
			"agreement": true,
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Valid  bool              `json:"valid"`
			Errors map[string]string `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Data.Valid)
	assert.Empty(t, resp.Data.Errors)
}

func TestValidateStepEndpointRejectsOutOfRangeStep(t *testing.T) {
	r := newValidateStepRouter()

	w := postJSON(t, r, "/applications/validate-step", gin.H{
		"step": 7,
		"form": gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}
