package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/repository"
	"github.com/media-blog/api-go/utils"
)

// AllowedMethods lists the verbs every content route answers.
const AllowedMethods = "GET, HEAD, OPTIONS"

// MethodNotAllowed rejects every mutating verb on the read-only routes.
func MethodNotAllowed(c *gin.Context) {
	c.Header("Allow", AllowedMethods)
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
		"error": fmt.Sprintf("Method \"%s\" not allowed.", c.Request.Method),
	})
}

// Options answers preflight and discovery requests on the read-only routes.
func Options(c *gin.Context) {
	c.Header("Allow", AllowedMethods)
	c.Status(http.StatusOK)
}

func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found."})
}

// respondError maps repository and pagination errors onto HTTP responses.
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c)
	case errors.Is(err, utils.ErrInvalidPage):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Invalid page."})
	default:
		log.Printf("%s: %v", message, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

// respondPage validates the page against total and writes the envelope.
func respondPage(c *gin.Context, page utils.Page, total int64, results interface{}) {
	if err := page.Validate(total); err != nil {
		respondError(c, err, "Error paginating results")
		return
	}
	next, previous := page.Links(c, total)
	c.JSON(http.StatusOK, PaginatedResponse{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  results,
	})
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
