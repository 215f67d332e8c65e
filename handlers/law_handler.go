package handlers

import (
	"errors"
	"io"
	"net/http"

	"lexaudit-backend/extract"
	"lexaudit-backend/service"

	"github.com/gin-gonic/gin"
)

// LawHandler handles HTTP requests for law ingestion and status
type LawHandler struct {
	ingestService *service.IngestService
}

// NewLawHandler creates a new law handler
func NewLawHandler(ingestService *service.IngestService) *LawHandler {
	return &LawHandler{ingestService: ingestService}
}

// IngestLaw handles POST /api/laws/:id/ingest. The law text arrives either
// as a multipart "law_file" upload or as the raw request body. A zero
// article count is returned as success: callers decide what zero means.
func (h *LawHandler) IngestLaw(c *gin.Context) {
	lawID := c.Param("id")

	rawText, ok := h.readLawText(c)
	if !ok {
		return
	}

	count, err := h.ingestService.IngestLaw(c.Request.Context(), rawText, lawID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INGEST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"law_id":        lawID,
			"article_count": count,
		},
	})
}

func (h *LawHandler) readLawText(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("law_file")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_OPEN_ERROR",
					"message": err.Error(),
				},
			})
			return "", false
		}
		defer file.Close()

		text, err := extract.Text(file, fileHeader.Filename)
		if err != nil {
			status := http.StatusInternalServerError
			code := "EXTRACTION_FAILED"
			if errors.Is(err, extract.ErrUnsupportedFormat) {
				status = http.StatusBadRequest
				code = "INVALID_FILE_TYPE"
			}
			c.JSON(status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": err.Error(),
				},
			})
			return "", false
		}
		return text, true
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_LAW_TEXT",
				"message": "Provide law text as a law_file upload or as the request body",
			},
		})
		return "", false
	}

	return string(body), true
}

// Status handles GET /api/laws/:id/status
func (h *LawHandler) Status(c *gin.Context) {
	lawID := c.Param("id")

	count, err := h.ingestService.Status(c.Request.Context(), lawID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STATUS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"law_id":        lawID,
			"article_count": count,
		},
	})
}
