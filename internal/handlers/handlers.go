// Package handlers adapts the repository layer to the JSON API. No
// invariants live here: handlers parse input, call the data layer and
// translate its errors to status codes.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"project-mapping/internal/repository"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	var rejected *repository.RejectedError

	switch {
	case errors.As(err, &rejected):
		status := http.StatusConflict
		if rejected.Reason == repository.ReasonUnsupportedType {
			status = http.StatusUnsupportedMediaType
		}
		c.JSON(status, gin.H{"error": rejected.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
