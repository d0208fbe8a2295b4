package entry

import "time"

// Shift is an open kiosk clock-in awaiting clock-out.
type Shift struct {
	EmployeeID  string    `json:"employeeId"`
	ProjectID   string    `json:"projectId"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	ClockedInAt time.Time `json:"clockedInAt"`
}
