package dto

type CreateAssignmentRequest struct {
	StudentID    string  `json:"student_id" validate:"required,uuid"`
	SupervisorID *string `json:"supervisor_id,omitempty" validate:"omitempty,uuid"`
	CompanyName  string  `json:"company_name" validate:"required,max=255"`
	StartDate    *string `json:"start_date,omitempty" validate:"omitempty,date-only"`
	EndDate      *string `json:"end_date,omitempty" validate:"omitempty,date-only"`
}
