package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxDocumentSize is the upload cap (10MB, same as the portal frontend shows).
const MaxDocumentSize = 10 << 20

// Allowed extension -> acceptable MIME types for uploaded documents.
var allowedDocuments = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

type DocumentHandler struct {
	documents repository.DocumentRepository
	uploadDir string
}

func NewDocumentHandler(documents repository.DocumentRepository, uploadDir string) *DocumentHandler {
	return &DocumentHandler{documents, uploadDir}
}

// Upload accepts one multipart file under "document" plus a category field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID := c.GetUint64("userID")

	file, err := c.FormFile("document")
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "No document file in request", nil)
		return
	}

	if file.Size > MaxDocumentSize {
		utils.APIResponse(c, http.StatusBadRequest, false, "File exceeds the 10MB limit", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	mimes, ok := allowedDocuments[ext]
	if !ok {
		utils.APIResponse(c, http.StatusBadRequest, false, "File type not allowed (jpg, png, pdf, doc, docx)", nil)
		return
	}

	contentType := file.Header.Get("Content-Type")
	mimeOK := false
	for _, m := range mimes {
		if contentType == m {
			mimeOK = true
			break
		}
	}
	if !mimeOK {
		utils.APIResponse(c, http.StatusBadRequest, false, "File content does not match its extension", nil)
		return
	}

	storedName := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, storedName)); err != nil {
		log.Printf("Error saving upload: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to store file", nil)
		return
	}

	document := models.Document{
		UserID:       userID,
		OriginalName: file.Filename,
		StoredName:   storedName,
		MimeType:     contentType,
		Size:         file.Size,
		Category:     c.PostForm("category"),
		Status:       models.DocPending,
	}

	if err := h.documents.Create(&document); err != nil {
		// row failed, don't leave the orphan file behind
		_ = os.Remove(filepath.Join(h.uploadDir, storedName))
		log.Printf("Error saving document row: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to save document", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Document Uploaded", document)
}

// List shows the citizen's own documents with status/category filters.
func (h *DocumentHandler) List(c *gin.Context) {
	userID := c.GetUint64("userID")

	opts := repository.DocumentListOptions{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     utils.StringToInt(c.Query("page"), 1),
		Limit:    utils.StringToInt(c.Query("limit"), 10),
	}

	documents, total, err := h.documents.ListByUser(userID, opts)
	if err != nil {
		log.Printf("Error listing documents: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch documents", nil)
		return
	}

	utils.PaginatedResponse(c, "My Documents", documents, len(documents), total, opts.Page, opts.Limit)
}

// Download streams the stored file and bumps the access counters.
func (h *DocumentHandler) Download(c *gin.Context) {
	userID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	document, err := h.documents.FindByIDAndUser(id, userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Document not found", nil)
		return
	}

	path := filepath.Join(h.uploadDir, document.StoredName)
	if _, err := os.Stat(path); err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "File is missing from storage", nil)
		return
	}

	now := time.Now()
	document.DownloadCount++
	document.LastAccessed = &now
	if err := h.documents.Update(document); err != nil {
		log.Printf("Error bumping download counter: %v", err)
	}

	c.FileAttachment(path, document.OriginalName)
}

// Delete removes the file (missing file is fine) and then the row.
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	document, err := h.documents.FindByIDAndUser(id, userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Document not found", nil)
		return
	}

	path := filepath.Join(h.uploadDir, document.StoredName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Error removing file %s: %v", path, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to remove file", nil)
		return
	}

	if err := h.documents.Delete(document.ID); err != nil {
		log.Printf("Error deleting document row: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete document", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Document Deleted", nil)
}

// ListForReview is the officer queue, defaults to pending documents.
func (h *DocumentHandler) ListForReview(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.DocPending
	}
	page := utils.StringToInt(c.Query("page"), 1)
	limit := utils.StringToInt(c.Query("limit"), 20)

	documents, total, err := h.documents.ListByStatus(status, page, limit)
	if err != nil {
		log.Printf("Error listing documents for review: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch documents", nil)
		return
	}

	utils.PaginatedResponse(c, "Documents For Review", documents, len(documents), total, page, limit)
}

// Verify lets an officer approve or reject a citizen's document.
func (h *DocumentHandler) Verify(c *gin.Context) {
	officerID := c.GetUint64("userID")
	id := utils.StringToUint64(c.Param("id"))

	var input models.VerifyDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	document, err := h.documents.FindByID(id)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Document not found", nil)
		return
	}

	if document.Status != models.DocPending {
		utils.APIResponse(c, http.StatusBadRequest, false,
			fmt.Sprintf("Document is already %s", document.Status), nil)
		return
	}

	if input.Action == "verify" {
		document.Status = models.DocVerified
	} else {
		document.Status = models.DocRejected
	}
	document.VerifiedBy = &officerID
	document.Remarks = input.Remarks

	if err := h.documents.Update(document); err != nil {
		log.Printf("Error verifying document: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update document", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Document "+document.Status, document)
}
