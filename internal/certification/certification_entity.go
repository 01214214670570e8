package certification

import (
	"time"

	"github.com/google/uuid"

	"github.com/pandiaraajan-hub/workerprolite/internal/course"
)

// Certification is evidence that a worker completed a course. At most one
// row per (worker, course) pair is meaningful: imports update in place
// rather than duplicating.
type Certification struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkerID          uuid.UUID `gorm:"type:uuid;index"`
	CourseID          uuid.UUID `gorm:"type:uuid;index"`
	Name              string
	CertificateNumber string
	IssuedDate        *time.Time
	ExpiryDate        *time.Time
	Status            string `gorm:"default:active"` // hint only, reads derive it
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Course *course.Course `gorm:"foreignKey:CourseID"`
}
