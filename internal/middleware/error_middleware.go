package middleware

import (
	"errors"
	"net/http"

	"stream-gateway/internal/transport/httpdto"
	gateway_errors "stream-gateway/pkg/errors"

	"github.com/gin-gonic/gin"
)

const StatusMessageHeader = "X-Status-Message"

// ErrorHandler turns the last error recorded on the context into a response.
// Handlers record errors with c.Error and return without writing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError maps err onto the gateway's status codes.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gateway_errors.ErrMissingIdentifier):
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: httpdto.MissingUserIDMessage})
	case errors.Is(err, gateway_errors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", httpdto.CodeRateLimited))
	case errors.Is(err, gateway_errors.ErrProvider):
		// net/http always writes the canonical reason phrase, so the
		// provider's message travels in a header and the body instead.
		c.Header(StatusMessageHeader, err.Error())
		c.String(http.StatusBadRequest, err.Error())
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), httpdto.CodeInternal))
	}
}
