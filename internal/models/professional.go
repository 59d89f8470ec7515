package models

// Professional represents a barber whose calendar can be booked.
type Professional struct {
	BaseModel
	UserID      string `gorm:"size:36;uniqueIndex" json:"userId"`
	DisplayName string `gorm:"size:100;not null" json:"displayName"`
	Specialty   string `gorm:"size:100" json:"specialty,omitempty"`
	Bio         string `gorm:"type:text" json:"bio,omitempty"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	// Services this professional offers
	Services []Service `gorm:"many2many:professional_services;" json:"services,omitempty"`

	// Schedule rows. WorkingHours is the recurring weekly pattern; the other
	// three are date-level overrides resolved by the scheduling package.
	WorkingHours     []WorkingHours    `gorm:"foreignKey:ProfessionalID" json:"workingHours,omitempty"`
	Vacations        []Vacation        `gorm:"foreignKey:ProfessionalID" json:"vacations,omitempty"`
	Absences         []Absence         `gorm:"foreignKey:ProfessionalID" json:"absences,omitempty"`
	SpecialSchedules []SpecialSchedule `gorm:"foreignKey:ProfessionalID" json:"specialSchedules,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:ProfessionalID" json:"-"`
}
