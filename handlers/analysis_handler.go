package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"lexaudit-backend/extract"
	"lexaudit-backend/models"
	"lexaudit-backend/repository"
	"lexaudit-backend/service"
	"lexaudit-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalysisHandler handles HTTP requests for contract analysis
type AnalysisHandler struct {
	analysisService  *service.AnalysisService
	documentRepo     *repository.DocumentRepository
	archive          storage.Storage
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, documentRepo *repository.DocumentRepository, archive storage.Storage) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		documentRepo:    documentRepo,
		archive:         archive,
		maxFileSize:     10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"application/pdf":    true,
			"text/plain":         true,
			"application/msword": true, // .doc
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // .docx
		},
	}
}

// AnalyzeContract handles POST /api/contracts/analyze. The contract
// arrives as a multipart "contract_file" with a "law_id" form field. The
// analysis result is always a complete verdict; only request-shape
// problems produce HTTP errors.
func (h *AnalysisHandler) AnalyzeContract(c *gin.Context) {
	lawID := c.PostForm("law_id")
	if lawID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_LAW_ID",
				"message": "law_id form field is required",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("contract_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "contract_file is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	mimeType := mimeTypeFor(fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if !h.allowedMimeTypes[mimeType] && !strings.HasPrefix(mimeType, "text/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "File type not allowed. Allowed types: PDF, TXT, DOC, DOCX",
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_READ_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	contractText, err := extract.Text(bytes.NewReader(data), fileHeader.Filename)
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
		return
	}

	h.archiveDocument(c, lawID, fileHeader.Filename, mimeType, data)

	result, err := h.analysisService.AnalyzeContract(c.Request.Context(), service.AnalyzeContractRequest{
		ContractText: contractText,
		LawID:        lawID,
		Filename:     fileHeader.Filename,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"law_id":   lawID,
			"filename": fileHeader.Filename,
			"analysis": result,
		},
	})
}

// History handles GET /api/laws/:id/analyses. Returns recent provenance
// records for the law, newest first.
func (h *AnalysisHandler) History(c *gin.Context) {
	lawID := c.Param("id")

	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.analysisService.History(c.Request.Context(), lawID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HISTORY_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	if records == nil {
		records = []models.AnalysisRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"law_id":   lawID,
			"analyses": records,
		},
	})
}

// GetDocument handles GET /api/documents/:id. Streams an archived
// contract back for re-examination.
func (h *AnalysisHandler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid document ID format",
			},
		})
		return
	}

	doc, err := h.documentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document not found",
			},
		})
		return
	}

	reader, err := h.archive.Download(c.Request.Context(), doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download document: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", doc.Filename))
	c.DataFromReader(http.StatusOK, doc.Size, doc.MimeType, reader, nil)
}

// archiveDocument keeps an audit copy of the analyzed upload. The archive
// is best-effort: failures are logged and the analysis proceeds.
func (h *AnalysisHandler) archiveDocument(c *gin.Context, lawID, filename, mimeType string, data []byte) {
	if h.archive == nil {
		return
	}

	docID := uuid.New()
	storagePath, err := h.archive.Upload(c.Request.Context(), docID, filename, bytes.NewReader(data))
	if err != nil {
		log.Printf("Warning: failed to archive contract %s: %v", filename, err)
		return
	}

	if h.documentRepo == nil {
		return
	}

	doc := &models.Document{
		ID:          docID,
		LawID:       lawID,
		Filename:    filename,
		MimeType:    mimeType,
		Size:        int64(len(data)),
		StoragePath: storagePath,
	}
	if err := h.documentRepo.Create(c.Request.Context(), doc); err != nil {
		log.Printf("Warning: failed to record archived contract %s: %v", filename, err)
	}
}

// mimeTypeFor falls back to the file extension when the upload carries no
// usable Content-Type header. Multipart clients commonly send
// application/octet-stream for any file, so it counts as unusable.
func mimeTypeFor(filename, headerType string) string {
	if headerType != "" && headerType != "application/octet-stream" {
		return headerType
	}

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".txt"):
		return "text/plain"
	case strings.HasSuffix(lower, ".doc"):
		return "application/msword"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
