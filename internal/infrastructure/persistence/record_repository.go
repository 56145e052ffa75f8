package persistence

import (
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/alert"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/personnel"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements personnel.EmployeeRepository using GORM
type GormEmployeeRepository = GormRepository[personnel.Employee, models.EmployeeModel, *models.EmployeeModel]

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return NewGormRepository[personnel.Employee, models.EmployeeModel](db, QueryOptions{
		SearchColumns: []string{"first_name", "last_name", "email", "position"},
		FilterColumns: map[string]string{
			"department":   "department",
			"status":       "status",
			"contractType": "contract_type",
		},
		SortFields: EmployeeSortFields,
	})
}

// GormDocumentRepository implements document.DocumentRepository using GORM
type GormDocumentRepository = GormRepository[document.Document, models.DocumentModel, *models.DocumentModel]

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return NewGormRepository[document.Document, models.DocumentModel](db, QueryOptions{
		SearchColumns: []string{"title", "description", "original_file_name"},
		FilterColumns: map[string]string{
			"category":    "category",
			"contentType": "content_type",
			"uploadedBy":  "uploaded_by",
		},
		SortFields: DocumentSortFields,
	})
}

// GormContractRepository implements document.ContractRepository using GORM
type GormContractRepository = GormRepository[document.Contract, models.ContractModel, *models.ContractModel]

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return NewGormRepository[document.Contract, models.ContractModel](db, QueryOptions{
		SearchColumns: []string{"contract_number", "title", "party_name"},
		FilterColumns: map[string]string{
			"status":       "status",
			"contractType": "contract_type",
			"endsBefore":   "end_date <= ?",
		},
		SortFields: ContractSortFields,
	})
}

// GormAlertRepository implements alert.AlertRepository using GORM
type GormAlertRepository = GormRepository[alert.Alert, models.AlertModel, *models.AlertModel]

// NewGormAlertRepository creates a new GormAlertRepository
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return NewGormRepository[alert.Alert, models.AlertModel](db, QueryOptions{
		SearchColumns: []string{"title", "message"},
		FilterColumns: map[string]string{
			"severity": "severity",
			"status":   "status",
			"type":     "type",
			"userId":   "user_id",

			"entityType": "entity_type",
			"entityId":   "entity_id",
		},
		SortFields: AlertSortFields,
	})
}

var (
	_ personnel.EmployeeRepository = (*GormEmployeeRepository)(nil)
	_ document.DocumentRepository  = (*GormDocumentRepository)(nil)
	_ document.ContractRepository  = (*GormContractRepository)(nil)
	_ alert.AlertRepository        = (*GormAlertRepository)(nil)
)
