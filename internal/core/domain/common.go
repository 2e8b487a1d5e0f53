package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Dimensions carries the optional analytical tags a journal line (and the
// ledger row it produces) can be attributed to.
type Dimensions struct {
	CostCenterID *string `json:"costCenterID,omitempty"`
	DepartmentID *string `json:"departmentID,omitempty"`
	ProjectID    *string `json:"projectID,omitempty"`
	LocationID   *string `json:"locationID,omitempty"`
	PartyID      *string `json:"partyID,omitempty"`
}
