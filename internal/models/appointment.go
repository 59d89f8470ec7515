package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents a booked visit on a professional's day. Date and
// clock fields follow the schedule conventions ("YYYY-MM-DD", "HH:MM").
// Appointments are never deleted, only transitioned to cancelled, so the
// table doubles as the reporting history.
type Appointment struct {
	BaseModel
	ProfessionalID string            `gorm:"size:36;not null;index:idx_appt_prof_date" json:"professionalId"`
	Date           string            `gorm:"size:10;not null;index:idx_appt_prof_date" json:"date"`
	StartTime      string            `gorm:"size:5;not null" json:"startTime"`
	EndTime        string            `gorm:"size:5;not null" json:"endTime"`
	Status         AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`

	// Client contact, denormalized so walk-ins without an account can book.
	ClientName  string `gorm:"size:100;not null" json:"clientName"`
	ClientPhone string `gorm:"size:30" json:"clientPhone,omitempty"`
	ClientEmail string `gorm:"size:255" json:"clientEmail,omitempty"`

	// Totals over the ordered service items, fixed at booking time.
	TotalDuration int     `gorm:"not null" json:"totalDuration"` // minutes
	TotalPrice    float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	Items []AppointmentItem `gorm:"foreignKey:AppointmentID" json:"items,omitempty"`

	// Relations
	Professional Professional `gorm:"foreignKey:ProfessionalID" json:"-"`
}

// AppointmentItem is one service of an appointment, in booking order.
// Name, duration and price are snapshots of the catalogue entry so later
// catalogue edits do not rewrite history.
type AppointmentItem struct {
	BaseModel
	AppointmentID string  `gorm:"size:36;index;not null" json:"appointmentId"`
	ServiceID     string  `gorm:"size:36;index;not null" json:"serviceId"`
	Position      int     `gorm:"not null" json:"position"`
	ServiceName   string  `gorm:"size:100" json:"serviceName"`
	Duration      int     `gorm:"not null" json:"duration"`
	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	Service Service `gorm:"foreignKey:ServiceID" json:"-"`
}
