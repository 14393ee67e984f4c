package staff

type CreateStaffRequest struct {
	FullName          string  `json:"full_name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	EmployeeNumber    string  `json:"employee_number"`
	NRCNo             string  `json:"nrc_no"`
	Department        string  `json:"department"`
	Position          string  `json:"position"`
	Grade             string  `json:"grade"`
	Salary            float64 `json:"salary"`
	Station           string  `json:"station"`
	Division          string  `json:"division"`
	DateOfAppointment string  `json:"date_of_appointment"`
	IsSupervisor      bool    `json:"is_supervisor"`
	IsHR              bool    `json:"is_hr"`
	IsED              bool    `json:"is_ed"`
	IsAdmin           bool    `json:"is_admin"`
}

type UpdateStaffRequest struct {
	FullName          *string  `json:"full_name"`
	Department        *string  `json:"department"`
	Position          *string  `json:"position"`
	Grade             *string  `json:"grade"`
	Salary            *float64 `json:"salary"`
	Station           *string  `json:"station"`
	Division          *string  `json:"division"`
	DateOfAppointment *string  `json:"date_of_appointment"`
	IsSupervisor      *bool    `json:"is_supervisor"`
	IsHR              *bool    `json:"is_hr"`
	IsED              *bool    `json:"is_ed"`
	IsAdmin           *bool    `json:"is_admin"`
	Active            *bool    `json:"active"`
}

type StaffResponse struct {
	ID                string  `json:"id"`
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	EmployeeNumber    string  `json:"employee_number"`
	NRCNo             string  `json:"nrc_no,omitempty"`
	Department        string  `json:"department,omitempty"`
	Position          string  `json:"position,omitempty"`
	Grade             string  `json:"grade,omitempty"`
	Salary            float64 `json:"salary,omitempty"`
	Station           string  `json:"station,omitempty"`
	Division          string  `json:"division,omitempty"`
	DateOfAppointment *string `json:"date_of_appointment,omitempty"`
	IsSupervisor      bool    `json:"is_supervisor"`
	IsHR              bool    `json:"is_hr"`
	IsED              bool    `json:"is_ed"`
	IsAdmin           bool    `json:"is_admin"`
	Active            bool    `json:"active"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// ApproverOption is the slim shape the portal's approver pickers consume.
type ApproverOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Position string `json:"position,omitempty"`
}
