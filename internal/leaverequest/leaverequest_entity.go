package leaverequest

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EmployeeSnapshot is the requester's profile captured at submission time.
// Later profile edits never retroactively alter a submitted request.
type EmployeeSnapshot struct {
	FullName                   string  `json:"full_name"`
	Email                      string  `json:"email"`
	EmployeeNumber             string  `json:"employee_number"`
	NRCNo                      string  `json:"nrc_no,omitempty"`
	Department                 string  `json:"department"`
	Position                   string  `json:"position"`
	Grade                      string  `json:"grade,omitempty"`
	Salary                     float64 `json:"salary,omitempty"`
	DateOfAppointment          string  `json:"date_of_appointment,omitempty"`
	DateOfReturnAfterLastLeave string  `json:"date_of_return_after_last_leave,omitempty"`
	DateLastTravelAllowance    string  `json:"date_last_travel_allowance,omitempty"`
}

func (s EmployeeSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *EmployeeSnapshot) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported employee snapshot column type %T", value)
	}
}

type LeaveRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_requests_reference"`
	// uq_leave_requests_period is partial: it only guards in-flight requests,
	// so a requester can submit the same period again after a rejection.
	RequesterID uuid.UUID        `gorm:"type:uuid;not null;index:idx_leave_requests_requester;uniqueIndex:uq_leave_requests_period,where:status LIKE 'Pending%'"`
	Employee    EmployeeSnapshot `gorm:"type:jsonb;not null"`

	LeaveType      string    `gorm:"type:varchar(30);not null"`
	StartDate      time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_requests_period"`
	EndDate        time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_requests_period"`
	RequestedDays  int       `gorm:"type:int;not null"`
	CommutedDays   int       `gorm:"type:int;not null;default:0"`
	AddressOnLeave string    `gorm:"type:text"`

	// Local leave accrual context; zero-valued on the annual track.
	Station              string     `gorm:"type:varchar(120)"`
	Division             string     `gorm:"type:varchar(120)"`
	LastLeaveDate        *time.Time `gorm:"type:date"`
	MonthsSinceLastLeave int        `gorm:"type:int;not null;default:0"`
	RateOfLeave          float64    `gorm:"type:numeric(4,2);not null;default:0"`
	AccruedLeaveDays     int        `gorm:"type:int;not null;default:0"`

	SupervisorID       string  `gorm:"type:varchar(64);index:idx_leave_requests_supervisor"`
	SupervisorName     string  `gorm:"type:varchar(120)"`
	SupervisorDecision string  `gorm:"type:varchar(10);not null;default:'Pending'"`
	SupervisorNotes    *string `gorm:"type:text"`
	SupervisorActionAt *time.Time

	HRID       string     `gorm:"column:hr_id;type:varchar(64);index:idx_leave_requests_hr"`
	HRName     string     `gorm:"column:hr_name;type:varchar(120)"`
	HRDecision string     `gorm:"column:hr_decision;type:varchar(10);not null;default:'Pending'"`
	HRNotes    *string    `gorm:"column:hr_notes;type:text"`
	HRActionAt *time.Time `gorm:"column:hr_action_at"`

	EDID       string     `gorm:"column:ed_id;type:varchar(64);index:idx_leave_requests_ed"`
	EDName     string     `gorm:"column:ed_name;type:varchar(120)"`
	EDDecision string     `gorm:"column:ed_decision;type:varchar(10);not null;default:'Pending'"`
	EDNotes    *string    `gorm:"column:ed_notes;type:text"`
	EDActionAt *time.Time `gorm:"column:ed_action_at"`

	Status          string  `gorm:"type:varchar(20);not null;index:idx_leave_requests_status"`
	ApprovedDays    *int    `gorm:"type:int"`
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
