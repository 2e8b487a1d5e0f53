package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelDimensions converts domain Dimensions to model Dimensions
func ToModelDimensions(d domain.Dimensions) models.Dimensions {
	return models.Dimensions{
		CostCenterID: d.CostCenterID,
		DepartmentID: d.DepartmentID,
		ProjectID:    d.ProjectID,
		LocationID:   d.LocationID,
		PartyID:      d.PartyID,
	}
}

// ToDomainDimensions converts model Dimensions to domain Dimensions
func ToDomainDimensions(m models.Dimensions) domain.Dimensions {
	return domain.Dimensions{
		CostCenterID: m.CostCenterID,
		DepartmentID: m.DepartmentID,
		ProjectID:    m.ProjectID,
		LocationID:   m.LocationID,
		PartyID:      m.PartyID,
	}
}
