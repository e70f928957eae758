package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/apperr"
)

// respondError maps service errors to HTTP statuses in one place. Handlers
// never inspect error kinds themselves.
func respondError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": ae.Message})
		case apperr.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": ae.Message})
		case apperr.KindAuthorization:
			c.JSON(http.StatusForbidden, gin.H{"error": ae.Message})
		case apperr.KindConflict:
			c.JSON(http.StatusConflict, gin.H{"error": ae.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	// A unique constraint tripping inside Create means a concurrent writer
	// won a race the pre-checks could not see.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "resource already exists"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
