package v1

import (
	"net/http"
	"strconv"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fail maps a service error onto the response envelope. Internal errors are
// logged server-side and surfaced as a generic message only.
func fail(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)

	if status == http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{
			"status":  "error",
			"message": "Internal server error",
		})
		return
	}

	body := gin.H{
		"status":  "error",
		"message": err.Error(),
	}
	if verr, ok := apperrors.IsValidation(err); ok && verr.Details != nil {
		body["details"] = verr.Details
	}
	c.JSON(status, body)
}

// parseListQuery reads the shared page/limit/search/sort query parameters
func parseListQuery(c *gin.Context) dto.ListQuery {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return dto.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}
}
