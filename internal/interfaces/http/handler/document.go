package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	documentapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/multipart"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentService is the document use case set
type DocumentService interface {
	CRUDService[documentapp.DocumentResponse, documentapp.CreateDocumentRequest, documentapp.UpdateDocumentRequest]
	DownloadURL(ctx context.Context, id uuid.UUID) (*documentapp.DownloadResponse, error)
}

// DocumentHandler serves /documents
type DocumentHandler struct {
	*CRUDHandler[documentapp.DocumentResponse, documentapp.CreateDocumentRequest, documentapp.UpdateDocumentRequest]
	service DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service DocumentService) *DocumentHandler {
	return &DocumentHandler{
		CRUDHandler: NewCRUDHandler[documentapp.DocumentResponse, documentapp.CreateDocumentRequest, documentapp.UpdateDocumentRequest](service,
			FilterParam{Name: "category"},
			FilterParam{Name: "contentType"},
			FilterParam{Name: "uploadedBy", Kind: FilterUUID},
		),
		service: service,
	}
}

// Download handles GET /documents/:id/download by redirecting to the
// storage URL of the file.
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	resp, err := h.service.DownloadURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, resp.URL)
}

// ContractHandler serves /contracts
type ContractHandler = CRUDHandler[documentapp.ContractResponse, documentapp.CreateContractRequest, documentapp.UpdateContractRequest]

// NewContractHandler creates a handler for contracts
func NewContractHandler(service CRUDService[documentapp.ContractResponse, documentapp.CreateContractRequest, documentapp.UpdateContractRequest]) *ContractHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "status"},
		FilterParam{Name: "contractType"},
	)
}

// Uploader stores an uploaded file
type Uploader interface {
	Upload(ctx context.Context, in documentapp.UploadInput) (*documentapp.UploadResponse, error)
}

// Headers marking a base64-encoded upload body
const (
	BodyEncodingHeader            = "X-Body-Encoding"
	ContentTransferEncodingHeader = "Content-Transfer-Encoding"
)

// UploadHandler accepts multipart/form-data file uploads
type UploadHandler struct {
	BaseHandler
	uploader Uploader
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Upload handles POST /upload and POST /documents/upload. The file is read
// from the "file" part; optional title, description and category fields
// also record a document for it.
func (h *UploadHandler) Upload(c *gin.Context) {
	boundary, err := multipart.BoundaryFromContentType(c.GetHeader("Content-Type"))
	if err != nil {
		h.Error(c, dto.ErrCodeBadRequest, err.Error())
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		middleware.HandleBindError(c, err)
		return
	}
	body, err := multipart.DecodeBody(raw, isBase64Body(c))
	if err != nil {
		h.Error(c, dto.ErrCodeBadRequest, err.Error())
		return
	}

	parts, err := multipart.Parse(body, boundary)
	if err != nil {
		h.Error(c, dto.ErrCodeBadRequest, err.Error())
		return
	}
	file, err := multipart.FilePartFrom(parts)
	if err != nil {
		h.Error(c, dto.ErrCodeBadRequest, err.Error())
		return
	}
	fields := multipart.FormValues(parts)

	in := documentapp.UploadInput{
		Data:             file.Data,
		OriginalFileName: file.FileName,
		ContentType:      file.ContentType,
		Title:            strings.TrimSpace(fields["title"]),
		Description:      strings.TrimSpace(fields["description"]),
		Category:         strings.TrimSpace(fields["category"]),
	}
	if userID, ok := currentUserID(c); ok {
		in.UploadedBy = &userID
	}

	resp, err := h.uploader.Upload(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func isBase64Body(c *gin.Context) bool {
	for _, header := range []string{BodyEncodingHeader, ContentTransferEncodingHeader} {
		if strings.EqualFold(strings.TrimSpace(c.GetHeader(header)), "base64") {
			return true
		}
	}
	return false
}
