package controllers

import (
	"log"
	"net/http"

	"journal-editorial-api/services"

	"github.com/gin-gonic/gin"
)

// actorFromContext rebuilds the trusted actor set by the auth middleware.
func actorFromContext(c *gin.Context) services.Actor {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	actor := services.Actor{}
	if id, ok := userID.(string); ok {
		actor.ID = id
	}
	if r, ok := role.(string); ok {
		actor.Role = r
	}
	return actor
}

// respondServiceError translates the service error taxonomy into a
// distinguishable HTTP failure. Unexpected errors are logged and become a
// generic 500 so callers never see internals.
func respondServiceError(c *gin.Context, err error) {
	if services.IsServiceError(err) {
		c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
