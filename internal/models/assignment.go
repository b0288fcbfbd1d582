package models

import "gorm.io/datatypes"

// InternshipAssignment связывает студента с руководителем и координатором.
// У студента может быть только одно назначение.
type InternshipAssignment struct {
	BaseModel
	StudentID     string           `gorm:"type:uuid;uniqueIndex;not null" json:"student_id"`
	SupervisorID  *string          `gorm:"type:uuid;index" json:"supervisor_id,omitempty"`
	CoordinatorID *string          `gorm:"type:uuid" json:"coordinator_id,omitempty"`
	CompanyName   string           `gorm:"not null" json:"company_name"`
	StartDate     *datatypes.Date  `json:"start_date,omitempty"`
	EndDate       *datatypes.Date  `json:"end_date,omitempty"`
	Status        AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Student    *User `gorm:"foreignKey:StudentID" json:"-"`
	Supervisor *User `gorm:"foreignKey:SupervisorID" json:"-"`
}

func (InternshipAssignment) TableName() string {
	return "internship_assignments"
}
