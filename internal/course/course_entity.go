package course

import (
	"time"

	"github.com/google/uuid"
)

// Course is a training program catalog entry. The name doubles as the
// import lookup key and is matched case-insensitively.
type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"index"`
	Description string
	Duration    *int `gorm:"comment:hours"`
	IsActive    bool `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
