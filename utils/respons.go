package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RespondError writes {"error": ...}. Public errors keep their own message;
// anything else is logged and answered with the fixed fallback message.
func RespondError(c *gin.Context, err error, fallback string) {
	var pub *PublicError
	if errors.As(err, &pub) {
		InfoLogger.WithField("path", c.Request.URL.Path).Infof("%s: %v", fallback, err)
		c.JSON(StatusCode(err), ErrorResponse{Error: pub.Message})
		return
	}

	ErrorLogger.WithError(err).
		WithField("method", c.Request.Method).
		WithField("path", c.Request.URL.Path).
		Error(fallback)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}
