package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/liview/internal/domain/temparea"
	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

// Kinds reported for failures that are not filesystem errors.
const (
	KindInvalidRequest = "InvalidRequest"
	KindCancelled      = "Cancelled"
	KindUnavailable    = "Unavailable"
)

// StatusFor maps an error to its HTTP status and failure kind.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// 499 is the de-facto "client closed request" status
		return 499, KindCancelled
	case errors.Is(err, temparea.ErrClosed):
		return http.StatusServiceUnavailable, KindUnavailable
	}

	kind := fserr.KindOf(err)
	switch kind {
	case fserr.KindPathNotFound:
		return http.StatusNotFound, kind.String()
	case fserr.KindNoParent:
		return http.StatusConflict, kind.String()
	case fserr.KindArchiveFormat:
		return http.StatusUnprocessableEntity, kind.String()
	case fserr.KindIO:
		return http.StatusInternalServerError, kind.String()
	default:
		return http.StatusBadRequest, KindInvalidRequest
	}
}

func respondError(c *gin.Context, err error) {
	status, kind := StatusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
		"kind":    kind,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
		"kind":    KindInvalidRequest,
	})
}
