package entry

import "fmt"

// Status is the approval state of an entry
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus converts s to a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q (use pending, approved or rejected)", ErrInvalidStatus, s)
}

// SetStatus applies a single-entry status change.
// Locked entries refuse every change. Approving locks the entry.
func (e *TimeEntry) SetStatus(s Status) error {
	if e.Locked {
		return ErrLocked
	}
	if _, err := ParseStatus(string(s)); err != nil {
		return err
	}
	e.Status = s
	if s == StatusApproved {
		e.Locked = true
	}
	return nil
}

// CanDelete returns ErrLocked if the entry may not be deleted.
func (e TimeEntry) CanDelete() error {
	if e.Locked {
		return ErrLocked
	}
	return nil
}

// ApproveWeek approves and locks every entry in week, regardless of its
// current state. It returns the number of entries touched.
func ApproveWeek(entries []TimeEntry, week string) int {
	n := 0
	for i := range entries {
		if entries[i].Week() == week {
			entries[i].Status = StatusApproved
			entries[i].Locked = true
			n++
		}
	}
	return n
}

// RejectWeek rejects and unlocks every entry in week, including entries
// that were approved earlier. It returns the number of entries touched.
func RejectWeek(entries []TimeEntry, week string) int {
	n := 0
	for i := range entries {
		if entries[i].Week() == week {
			entries[i].Status = StatusRejected
			entries[i].Locked = false
			n++
		}
	}
	return n
}
