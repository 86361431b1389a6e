package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackforest/shop-service/internal/errs"
)

// handleError maps a taxonomy error onto an HTTP response. The body is
// always {"error": ...} with an optional "detail" for wrapped causes.
func handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindConflict:
		status = http.StatusConflict
	case errs.KindAuth:
		status = http.StatusUnauthorized
	}

	body := gin.H{"error": err.Error()}
	if detail := errs.DetailOf(err); detail != "" && status == http.StatusInternalServerError {
		body["detail"] = detail
	}
	c.JSON(status, body)
}
