package controllers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// bindJSON decodes the body into req. A malformed body becomes a
// validation error so it is answered with 400.
func bindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
		}
		return utils.Invalid("invalid input: %s", strings.Join(msgs, "; "))
	}
	return utils.Invalid("invalid request body")
}

// findByID loads one row by id, turning a missing row into a NotFound error
// carrying message.
func findByID(db *gorm.DB, dest interface{}, id, message string) error {
	err := db.First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(message)
	}
	return err
}

// trimmed returns nil for nil or blank strings.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
