package models

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/alert"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/document"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentModel is the persistence model for the Document domain entity.
type DocumentModel struct {
	BaseModel
	Title            string            `gorm:"type:varchar(200);not null"`
	Description      string            `gorm:"type:text"`
	Category         document.Category `gorm:"type:varchar(20);not null;default:'other';index"`
	Path             string            `gorm:"type:varchar(500);not null"`
	FileName         string            `gorm:"type:varchar(255)"`
	OriginalFileName string            `gorm:"type:varchar(255)"`
	ContentType      string            `gorm:"type:varchar(100);index"`
	Size             int64             `gorm:"not null;default:0"`
	UploadedBy       *uuid.UUID        `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *document.Document {
	return &document.Document{
		BaseEntity:       m.BaseModel.entity(),
		Title:            m.Title,
		Description:      m.Description,
		Category:         m.Category,
		Path:             m.Path,
		FileName:         m.FileName,
		OriginalFileName: m.OriginalFileName,
		ContentType:      m.ContentType,
		Size:             m.Size,
		UploadedBy:       m.UploadedBy,
	}
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(d *document.Document) {
	m.setEntity(d.BaseEntity)
	m.Title = d.Title
	m.Description = d.Description
	m.Category = d.Category
	m.Path = d.Path
	m.FileName = d.FileName
	m.OriginalFileName = d.OriginalFileName
	m.ContentType = d.ContentType
	m.Size = d.Size
	m.UploadedBy = d.UploadedBy
}

// ContractModel is the persistence model for the Contract domain entity.
type ContractModel struct {
	BaseModel
	ContractNumber string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_contracts_number"`
	Title          string                  `gorm:"type:varchar(200);not null"`
	ContractType   document.ContractType   `gorm:"type:varchar(20);not null;default:'service';index"`
	PartyName      string                  `gorm:"type:varchar(200);not null"`
	PartyContact   string                  `gorm:"type:varchar(200)"`
	StartDate      time.Time               `gorm:"not null"`
	EndDate        *time.Time              `gorm:"index"`
	Value          decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	Currency       string                  `gorm:"type:varchar(3);not null;default:'XAF'"`
	Status         document.ContractStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	DocumentID     *uuid.UUID              `gorm:"type:uuid;index"`
	Notes          string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract entity.
func (m *ContractModel) ToDomain() *document.Contract {
	return &document.Contract{
		BaseEntity:     m.BaseModel.entity(),
		ContractNumber: m.ContractNumber,
		Title:          m.Title,
		ContractType:   m.ContractType,
		PartyName:      m.PartyName,
		PartyContact:   m.PartyContact,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Value:          m.Value,
		Currency:       m.Currency,
		Status:         m.Status,
		DocumentID:     m.DocumentID,
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Contract entity.
func (m *ContractModel) FromDomain(c *document.Contract) {
	m.setEntity(c.BaseEntity)
	m.ContractNumber = c.ContractNumber
	m.Title = c.Title
	m.ContractType = c.ContractType
	m.PartyName = c.PartyName
	m.PartyContact = c.PartyContact
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Value = c.Value
	m.Currency = c.Currency
	m.Status = c.Status
	m.DocumentID = c.DocumentID
	m.Notes = c.Notes
}

// AlertModel is the persistence model for the Alert domain entity.
type AlertModel struct {
	BaseModel
	Title          string         `gorm:"type:varchar(200);not null"`
	Message        string         `gorm:"type:text;not null"`
	Type           alert.Type     `gorm:"type:varchar(30);not null;default:'general';index"`
	Severity       alert.Severity `gorm:"type:varchar(20);not null;default:'info';index"`
	Status         alert.Status   `gorm:"type:varchar(20);not null;default:'open';index"`
	UserID         *uuid.UUID     `gorm:"type:uuid;index"`
	EntityType     string         `gorm:"type:varchar(50);index:idx_alerts_entity"`
	EntityID       *uuid.UUID     `gorm:"type:uuid;index:idx_alerts_entity"`
	DueDate        *time.Time
	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time
}

// TableName returns the table name for GORM
func (AlertModel) TableName() string {
	return "alerts"
}

// ToDomain converts the persistence model to a domain Alert entity.
func (m *AlertModel) ToDomain() *alert.Alert {
	return &alert.Alert{
		BaseEntity:     m.BaseModel.entity(),
		Title:          m.Title,
		Message:        m.Message,
		Type:           m.Type,
		Severity:       m.Severity,
		Status:         m.Status,
		UserID:         m.UserID,
		EntityType:     m.EntityType,
		EntityID:       m.EntityID,
		DueDate:        m.DueDate,
		AcknowledgedAt: m.AcknowledgedAt,
		ResolvedAt:     m.ResolvedAt,
	}
}

// FromDomain populates the persistence model from a domain Alert entity.
func (m *AlertModel) FromDomain(a *alert.Alert) {
	m.setEntity(a.BaseEntity)
	m.Title = a.Title
	m.Message = a.Message
	m.Type = a.Type
	m.Severity = a.Severity
	m.Status = a.Status
	m.UserID = a.UserID
	m.EntityType = a.EntityType
	m.EntityID = a.EntityID
	m.DueDate = a.DueDate
	m.AcknowledgedAt = a.AcknowledgedAt
	m.ResolvedAt = a.ResolvedAt
}
