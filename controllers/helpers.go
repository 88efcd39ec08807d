package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/models"
	"github.com/princinho/parcelly/utils"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// idParam parses the :id path parameter. On failure it writes the 400 and
// returns false; callers must not touch the store.
func idParam(c *gin.Context) (bson.ObjectID, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return bson.NilObjectID, false
	}
	return id, true
}

// bindDocument decodes a free-form JSON object body.
func bindDocument(c *gin.Context) (models.Document, bool) {
	var body models.Document
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body", "details": err.Error()})
		return nil, false
	}
	if body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return nil, false
	}
	return body, true
}

func serverError(c *gin.Context, msg string, err error) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(msg)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
}
