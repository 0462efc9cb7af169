package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/learningpath-api/internal/middleware"
	"github.com/noah-isme/learningpath-api/internal/models"
	appErrors "github.com/noah-isme/learningpath-api/pkg/errors"
	"github.com/noah-isme/learningpath-api/pkg/response"
)

// currentUser returns the caller or writes 401 and returns nil.
func currentUser(c *gin.Context) *models.JWTClaims {
	claims := middleware.Claims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil
	}
	return claims
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func withMeta(c *gin.Context, cacheHit bool) map[string]interface{} {
	middleware.SetCacheHit(c, cacheHit)
	return middleware.ExtractMeta(c)
}
