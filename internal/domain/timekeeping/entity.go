package timekeeping

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CheckType is the kind of a raw timekeeping event.
type CheckType string

const (
	CheckTypeIn  CheckType = "checkin"
	CheckTypeOut CheckType = "checkout"
)

// ParseCheckType parses the wire representation of an event kind.
func ParseCheckType(s string) (CheckType, bool) {
	switch CheckType(strings.ToLower(strings.TrimSpace(s))) {
	case CheckTypeIn:
		return CheckTypeIn, true
	case CheckTypeOut:
		return CheckTypeOut, true
	}
	return "", false
}

// Status is the derived attendance outcome for one employee on one work date.
// It is the single closed enumeration shared by the deriver, the aggregator
// and the query layer; presentation strings are produced from it, never the
// other way around mid-pipeline.
type Status string

const (
	StatusPresent       Status = "Present"
	StatusLate          Status = "Late"
	StatusAbsent        Status = "Absent"
	StatusLeave         Status = "Leave"
	StatusNotCheckedOut Status = "Not-checked-out"
)

// ParseStatus parses a status filter value. The old dashboard client sent
// lowercased, underscored variants, so those are accepted too.
func ParseStatus(s string) (Status, bool) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "present":
		return StatusPresent, true
	case "late":
		return StatusLate, true
	case "absent", "not-checked-in":
		return StatusAbsent, true
	case "leave", "on-leave":
		return StatusLeave, true
	case "not-checked-out":
		return StatusNotCheckedOut, true
	}
	return "", false
}

// Event is one immutable checkin/checkout fact. Rows are appended on
// check-in/check-out and never updated; the only mutation is administrative
// deletion.
type Event struct {
	LogID         int64
	EmployeeID    string
	WorkDate      time.Time
	CheckType     CheckType
	Timestamp     time.Time
	Similarity    *float64
	ProofImageURL *string

	// DTO
	EmployeeName     *string
	EmployeePosition *string
}

// DayRecord is the derived outcome for one (employee, work date). It has no
// identity of its own and is recomputed from the event log on every read.
type DayRecord struct {
	EmployeeID string
	WorkDate   time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours *decimal.Decimal
	Status     Status

	// DTO
	EmployeeName     string
	EmployeeEmail    string
	EmployeePosition string
}

// DayAggregate is the storage-side reduction of one day's events: earliest
// checkin, latest checkout and the leave flag, joined with employee identity.
// The deriver turns it into a DayRecord.
type DayAggregate struct {
	EmployeeID       string
	EmployeeName     string
	EmployeeEmail    string
	EmployeePosition string
	WorkDate         time.Time
	FirstCheckIn     *time.Time
	LastCheckOut     *time.Time
	OnLeave          bool
}
