package staff

import (
	"time"

	"github.com/google/uuid"
)

// Staff is an agency staff member in the directory. The role flags say which
// approval stages the member may act on; they drive both the approver option
// lists and the policy checks at the route layer.
type Staff struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName       string     `gorm:"type:varchar(120);not null"`
	Email          string     `gorm:"type:varchar(120);not null;uniqueIndex:uq_staff_email"`
	EmployeeNumber string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_staff_employee_number"`
	NRCNo          string     `gorm:"column:nrc_no;type:varchar(20)"`
	Department     string     `gorm:"type:varchar(120)"`
	Position       string     `gorm:"type:varchar(120)"`
	Grade          string     `gorm:"type:varchar(20)"`
	Salary         float64    `gorm:"type:numeric(12,2);not null;default:0"`
	Station        string     `gorm:"type:varchar(120)"`
	Division       string     `gorm:"type:varchar(120)"`
	AppointedAt    *time.Time `gorm:"type:date"`

	IsSupervisor bool `gorm:"not null;default:false"`
	IsHR         bool `gorm:"column:is_hr;not null;default:false"`
	IsED         bool `gorm:"column:is_ed;not null;default:false"`
	IsAdmin      bool `gorm:"not null;default:false"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Staff) TableName() string {
	return "staff"
}
