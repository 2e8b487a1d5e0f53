package models

import "time"

// AuditFields holds standard audit information as stored in the database.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Dimensions mirrors the nullable dimension columns shared by journal lines
// and general ledger rows.
type Dimensions struct {
	CostCenterID *string `json:"costCenterID,omitempty"`
	DepartmentID *string `json:"departmentID,omitempty"`
	ProjectID    *string `json:"projectID,omitempty"`
	LocationID   *string `json:"locationID,omitempty"`
	PartyID      *string `json:"partyID,omitempty"`
}
