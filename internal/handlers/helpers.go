package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salespipeline/internal/pipeline"
	"salespipeline/internal/services"
)

// tolerant of int / int64 / float64 / string values
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getUserAndRole(c *gin.Context) (userID, roleID int) {
	if id, ok := getIntFromCtx(c, "user_id"); ok {
		userID = id
	}
	if id, ok := getIntFromCtx(c, "role_id"); ok {
		roleID = id
	}
	return
}

func parseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// pageParams reads page/size query parameters (1-based page, size 1..500).
func pageParams(c *gin.Context) (limit, offset int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "100"))
	if err != nil || size < 1 || size > 500 {
		size = 100
	}
	return size, (page - 1) * size
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrLeadNotFound), errors.Is(err, services.ErrWorkOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidLead), errors.Is(err, pipeline.ErrSnapshotRequired):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrInvalidTransition),
		errors.Is(err, services.ErrTransitionBlocked),
		errors.Is(err, services.ErrInvalidStatusTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, tag string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("[%s][err] %v", tag, err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
