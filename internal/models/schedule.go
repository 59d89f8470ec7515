package models

// All clock fields in this file are "HH:MM" local-time strings and all date
// fields are "YYYY-MM-DD". The shop is a single physical location, so no
// timezone is attached anywhere; see the scheduling package for the parsing
// rules. Weekdays are indexed 0 = Sunday through 6 = Saturday.

// WorkingHours is one weekday row of a professional's recurring schedule.
type WorkingHours struct {
	BaseModel
	ProfessionalID string `gorm:"size:36;not null;uniqueIndex:idx_prof_weekday" json:"professionalId"`
	Weekday        int    `gorm:"not null;uniqueIndex:idx_prof_weekday" json:"weekday"`
	IsWorking      bool   `gorm:"default:true" json:"isWorking"`
	StartTime      string `gorm:"size:5" json:"startTime"`
	EndTime        string `gorm:"size:5" json:"endTime"`
	BreakStart     string `gorm:"size:5" json:"breakStart,omitempty"` // empty = no break
	BreakEnd       string `gorm:"size:5" json:"breakEnd,omitempty"`
}

// VacationStatus represents the approval state of a vacation request.
type VacationStatus string

const (
	VacationPending  VacationStatus = "pending"
	VacationApproved VacationStatus = "approved"
	VacationRejected VacationStatus = "rejected"
)

// Vacation is a requested date range off. Only approved vacations remove
// availability.
type Vacation struct {
	BaseModel
	ProfessionalID string         `gorm:"size:36;index;not null" json:"professionalId"`
	StartDate      string         `gorm:"size:10;not null" json:"startDate"`
	EndDate        string         `gorm:"size:10;not null" json:"endDate"`
	Status         VacationStatus `gorm:"size:20;default:'pending'" json:"status"`
	Reason         string         `gorm:"size:255" json:"reason,omitempty"`
}

// Absence marks a single date as unavailable regardless of approval.
type Absence struct {
	BaseModel
	ProfessionalID string `gorm:"size:36;index;not null" json:"professionalId"`
	Date           string `gorm:"size:10;not null" json:"date"`
	Justified      bool   `gorm:"default:false" json:"justified"`
	Reason         string `gorm:"size:255" json:"reason,omitempty"`
}

// SpecialSchedule replaces the regular weekday hours for a single date,
// e.g. extended opening before a holiday. Break fields empty means no break
// that day even if the regular weekday row has one.
type SpecialSchedule struct {
	BaseModel
	ProfessionalID string `gorm:"size:36;not null;uniqueIndex:idx_prof_special_date" json:"professionalId"`
	Date           string `gorm:"size:10;not null;uniqueIndex:idx_prof_special_date" json:"date"`
	StartTime      string `gorm:"size:5;not null" json:"startTime"`
	EndTime        string `gorm:"size:5;not null" json:"endTime"`
	BreakStart     string `gorm:"size:5" json:"breakStart,omitempty"`
	BreakEnd       string `gorm:"size:5" json:"breakEnd,omitempty"`
	Note           string `gorm:"size:255" json:"note,omitempty"`
}
