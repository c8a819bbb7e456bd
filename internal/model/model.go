package model

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}

type Client struct {
	ID                    int64
	FirstName             string
	LastName              string
	DateOfBirth           string
	Phone                 string
	Email                 string
	Address               string
	EmergencyContactName  string
	EmergencyContactPhone string
}

// DisplayName renders "Last, First" the way listings show clients.
func (c Client) DisplayName() string {
	return c.LastName + ", " + c.FirstName
}

type Service struct {
	ID   int64
	Name string
}

// Appointment times are stored as "YYYY-MM-DD HH:MM" text. Client and
// service references become nil once the referenced row is deleted.
type Appointment struct {
	ID        int64
	ClientID  *int64
	ServiceID *int64
	StartTime string
	EndTime   *string
	Notes     string
}

// AppointmentRow is an appointment joined with its client and service names.
type AppointmentRow struct {
	Appointment
	FirstName   *string
	LastName    *string
	ServiceName *string
}

// Invoice holds one value per configured invoice field, keyed by column name.
// A nil value is a NULL column.
type Invoice struct {
	ID     int64
	Values map[string]any
}

type ServiceCount struct {
	Name  string
	Count int
}
