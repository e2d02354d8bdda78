package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidParam parses a path parameter as a UUID, writing a 400 response when
// it doesn't parse. Callers must return when ok is false.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter, expected a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "fundar-backend"})
}
