package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/helixflow/helixflow-api/internal/middleware"
	"github.com/helixflow/helixflow-api/internal/models"
)

func identityFromContext(c *gin.Context) models.Identity {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return models.Identity{}
	}
	return identity
}
