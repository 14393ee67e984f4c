package leaverequest

type CreateLeaveRequest struct {
	Employee       EmployeeSnapshot `json:"employee_data" binding:"required"`
	LeaveType      string           `json:"leave_type" binding:"required"`
	StartDate      string           `json:"start_date" binding:"required"`
	EndDate        string           `json:"end_date" binding:"required"`
	CommutedDays   int              `json:"commuted_days"`
	AddressOnLeave string           `json:"address_on_leave" binding:"required"`
	SupervisorID   string           `json:"supervisor_id" binding:"required"`
	SupervisorName string           `json:"supervisor_name"`
	HRID           string           `json:"hr_id" binding:"required"`
	HRName         string           `json:"hr_name"`
	EDID           string           `json:"ed_id" binding:"required"`
	EDName         string           `json:"ed_name"`
}

type CreateLocalLeaveRequest struct {
	Employee       EmployeeSnapshot `json:"employee_data" binding:"required"`
	StartDate      string           `json:"start_date" binding:"required"`
	EndDate        string           `json:"end_date" binding:"required"`
	AddressOnLeave string           `json:"address_on_leave" binding:"required"`
	Station        string           `json:"station" binding:"required"`
	Division       string           `json:"division" binding:"required"`
	LastLeaveDate  string           `json:"last_leave_date" binding:"required"`
	RateOfLeave    float64          `json:"rate_of_leave"`
	EDID           string           `json:"ed_id" binding:"required"`
	EDName         string           `json:"ed_name"`
}

type ApproveLeaveRequest struct {
	Stage string `json:"stage" binding:"required,oneof=supervisor hr ed"`
	Notes string `json:"notes"`
}

type RejectLeaveRequest struct {
	Stage string `json:"stage" binding:"required,oneof=supervisor hr ed"`
	Notes string `json:"notes" binding:"required"`
}

type StageResponse struct {
	ApproverID   string  `json:"approver_id,omitempty"`
	ApproverName string  `json:"approver_name,omitempty"`
	Decision     string  `json:"decision"`
	Notes        *string `json:"notes,omitempty"`
	ActionAt     *string `json:"action_at,omitempty"`
}

type LeaveRequestResponse struct {
	ID             string           `json:"id"`
	Reference      string           `json:"reference"`
	RequesterID    string           `json:"requester_id"`
	Employee       EmployeeSnapshot `json:"employee_data"`
	LeaveType      string           `json:"leave_type"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	RequestedDays  int              `json:"requested_days"`
	CommutedDays   int              `json:"commuted_days,omitempty"`
	AddressOnLeave string           `json:"address_on_leave"`

	Station              string  `json:"station,omitempty"`
	Division             string  `json:"division,omitempty"`
	LastLeaveDate        *string `json:"last_leave_date,omitempty"`
	MonthsSinceLastLeave int     `json:"months_since_last_leave,omitempty"`
	RateOfLeave          float64 `json:"rate_of_leave,omitempty"`
	AccruedLeaveDays     int     `json:"accrued_leave_days,omitempty"`

	Supervisor StageResponse `json:"supervisor"`
	HR         StageResponse `json:"hr"`
	ED         StageResponse `json:"ed"`

	Status          string  `json:"status"`
	ApprovedDays    *int    `json:"approved_days,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type LeaveSummaryResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
