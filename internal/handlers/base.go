package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// JSONError writes a FastAPI-style error body
func JSONError(c *gin.Context, code int, detail string) {
	c.JSON(code, gin.H{"detail": detail})
}

// parsePagination reads skip/limit query params with the API's defaults
func parsePagination(c *gin.Context) (int, int) {
	skip := 0
	if s := c.Query("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			skip = n
		}
	}
	limit := 10
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return skip, limit
}

// parseIDParam parses a path param as a canonical entity id
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
