package document

import "github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"

// EventTypeDocumentUploaded is published after a file has been stored
const EventTypeDocumentUploaded = "document.uploaded"

// UploadedEvent describes a stored upload
type UploadedEvent struct {
	shared.BaseDomainEvent
	Path             string `json:"path"`
	FileName         string `json:"fileName"`
	OriginalFileName string `json:"originalFileName"`
	ContentType      string `json:"contentType"`
	Size             int64  `json:"size"`
	UploadedBy       string `json:"uploadedBy,omitempty"`
}
