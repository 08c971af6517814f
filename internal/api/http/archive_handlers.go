package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/liview/internal/domain/temparea"
)

// ArchiveRequest is the body of the extraction endpoints
type ArchiveRequest struct {
	Path string `json:"path" binding:"required"`
	// Name selects the cache directory for named extraction
	Name string `json:"name"`
	// Policy overrides the endpoint's policy when set
	Policy string `json:"policy"`
}

// ExtractArchive extracts into a session-scoped directory
func (h *Handlers) ExtractArchive(c *gin.Context) {
	h.openArchive(c, temparea.Scoped)
}

// OpenArchive extracts into a named cache directory
func (h *Handlers) OpenArchive(c *gin.Context) {
	h.openArchive(c, temparea.Named)
}

func (h *Handlers) openArchive(c *gin.Context, policy temparea.Policy) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid archive request: path is required")
		return
	}
	if req.Policy != "" {
		p, err := temparea.ParsePolicy(req.Policy)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		policy = p
	}

	res, err := h.session.Open(c.Request.Context(), req.Path, policy, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"policy":  policy,
		"dir":     res.Dir,
		"files":   res.Files,
		"dirs":    res.Dirs,
		"skipped": res.Skipped,
		"bytes":   res.Bytes,
	})
}

// ListArchives returns every extraction recorded in the session
func (h *Handlers) ListArchives(c *gin.Context) {
	records := h.session.Registry().List()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"archives": records,
		"count":    len(records),
	})
}

// ListEntries lists the members of an archive without extracting it
func (h *Handlers) ListEntries(c *gin.Context) {
	archivePath, ok := requirePath(c)
	if !ok {
		return
	}

	entries, err := h.session.Extractor().List(archivePath)
	h.metrics.RecordListing("archive_entries", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"archive": archivePath,
		"entries": entries,
		"count":   len(entries),
	})
}
