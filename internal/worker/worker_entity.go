package worker

import (
	"time"

	"github.com/google/uuid"
)

// Worker is a tracked person record keyed by the externally assigned
// workers id. Workers are never hard-deleted; deactivation flips IsActive.
type Worker struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkersID     string    `gorm:"column:workers_id;uniqueIndex:uq_workers_workers_id"`
	NameOfWorkers string
	Entity        string
	SerialNumber  string
	Designation   string
	ContactNo     string
	Nationality   string
	WPNo          string `gorm:"column:wp_no"`
	NRICFinNo     string `gorm:"column:nric_fin_no"`
	DateOfExpiry  *time.Time
	DateOfBirth   *time.Time
	IsActive      bool `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
