package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snackforest/shop-service/internal/errs"
)

func TestHandleError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", errs.NewValidationError("items", "at least one item is required"), http.StatusBadRequest},
		{"not found", errs.NewNotFoundError("product"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("account", "account already exists"), http.StatusConflict},
		{"auth", errs.NewAuthError("invalid credentials"), http.StatusUnauthorized},
		{"persistence", errs.NewPersistenceError("failed to insert order", errors.New("boom")), http.StatusInternalServerError},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleError_DetailOnlyForInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handleError(c, errs.NewPersistenceError("failed to insert order", errors.New("connection refused")))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "connection refused", body["detail"])
}
