// Package response writes the RealWorld API envelopes. Successful payloads
// are handler-shaped; every failure goes out as {"errors": {field: [msgs]}}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/conduitapp/conduit-api/pkg/apperror"
)

// ErrorEnvelope is the uniform error body.
type ErrorEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail writes a field-scoped error envelope with the given status.
func Fail(c *gin.Context, status int, fields map[string][]string) {
	c.JSON(status, ErrorEnvelope{Errors: fields})
}

// Error translates an application error into the envelope. Unrecognized
// errors are treated as storage failures: logged with the request id and
// surfaced as a generic 500 without internal details.
func Error(c *gin.Context, logger *logrus.Logger, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, ErrorEnvelope{Errors: appErr.Fields})
		return
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"error":      err.Error(),
		}).Error("request failed")
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Errors: map[string][]string{"body": {"internal server error"}},
	})
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, status int, fields map[string][]string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Errors: fields})
}
