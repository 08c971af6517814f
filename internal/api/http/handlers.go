package http

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/liview/internal/domain/gallery"
	"github.com/GriffinCanCode/liview/internal/domain/session"
	"github.com/GriffinCanCode/liview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/liview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/liview/internal/shared/fserr"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	session *session.Session
	locator *gallery.Locator
	browser *gallery.Browser
	metrics *monitoring.Metrics
	log     *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(sess *session.Session, locator *gallery.Locator, metrics *monitoring.Metrics, log *logging.Logger) *Handlers {
	return &Handlers{
		session: sess,
		locator: locator,
		browser: gallery.NewBrowser(sess.Registry()),
		metrics: metrics,
		log:     logging.OrNop(log).Named("api"),
	}
}

// Health handles liveness checks
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "liview",
		"version":        Version,
		"session_id":     h.session.ID(),
		"default_policy": h.session.DefaultPolicy(),
		"extracted":      h.session.Registry().Len(),
	})
}

// ListFolders lists sub-folders of path followed by extracted archives
func (h *Handlers) ListFolders(c *gin.Context) {
	dir, ok := requirePath(c)
	if !ok {
		return
	}

	folders, err := h.browser.ListFolders(dir)
	h.metrics.RecordListing("folders", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    dir,
		"folders": folders,
		"count":   len(folders),
	})
}

// ListImages lists images in path, descending into sub-folders when
// recursive=true
func (h *Handlers) ListImages(c *gin.Context) {
	dir, ok := requirePath(c)
	if !ok {
		return
	}

	recursive := false
	if raw := c.Query("recursive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "recursive must be a boolean")
			return
		}
		recursive = v
	}

	var (
		images []string
		err    error
		op     = "images"
	)
	if recursive {
		op = "images_recursive"
		images, err = h.locator.ListImagesRecursive(c.Request.Context(), dir)
	} else {
		images, err = h.locator.ListImages(dir)
	}
	h.metrics.RecordListing(op, err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"path":      dir,
		"recursive": recursive,
		"images":    images,
		"count":     len(images),
	})
}

// Siblings lists folders next to path
func (h *Handlers) Siblings(c *gin.Context) {
	dir, ok := requirePath(c)
	if !ok {
		return
	}

	siblings, err := gallery.Siblings(dir)
	h.metrics.RecordListing("siblings", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"path":     dir,
		"siblings": siblings,
		"count":    len(siblings),
	})
}

// Neighbors returns the previous and next sibling folders of path
func (h *Handlers) Neighbors(c *gin.Context) {
	dir, ok := requirePath(c)
	if !ok {
		return
	}

	n, err := gallery.FindNeighbors(dir)
	h.metrics.RecordListing("neighbors", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    dir,
		"prev":    n.Prev,
		"next":    n.Next,
		"index":   n.Index,
		"total":   n.Total,
	})
}

// Thumbnail returns the image representing a folder
func (h *Handlers) Thumbnail(c *gin.Context) {
	dir, ok := requirePath(c)
	if !ok {
		return
	}

	first, err := h.locator.FirstImage(dir)
	h.metrics.RecordListing("thumbnail", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"path":      dir,
		"thumbnail": first,
	})
}

// Image serves the bytes of one image file
func (h *Handlers) Image(c *gin.Context) {
	file, ok := requirePath(c)
	if !ok {
		return
	}
	if !h.locator.IsImage(file) {
		badRequest(c, "not an image file")
		return
	}

	info, err := os.Stat(file)
	if err != nil {
		respondError(c, fserr.IO("open image", file, err))
		return
	}
	if !info.Mode().IsRegular() {
		badRequest(c, "not an image file")
		return
	}

	c.File(file)
}

func requirePath(c *gin.Context) (string, bool) {
	p := c.Query("path")
	if p == "" {
		badRequest(c, "path parameter required")
		return "", false
	}
	return p, true
}
