package timekeeping

import (
	"time"

	"github.com/shopspring/decimal"
)

// DerivePolicy holds the knobs the status derivation depends on.
type DerivePolicy struct {
	// LateThresholdMinutes is minutes after local midnight. A checkin whose
	// local clock time is strictly later than this is classified Late.
	LateThresholdMinutes int
	Location             *time.Location
}

// DefaultPolicy matches the reference behavior: 09:00 local.
func DefaultPolicy() DerivePolicy {
	return DerivePolicy{
		LateThresholdMinutes: 9 * 60,
		Location:             time.Local,
	}
}

func (p DerivePolicy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// Derive computes the day outcome from the raw events of one
// (employee, work date). It is a pure function of its inputs: ordering comes
// from event timestamps, never from slice or insertion order, and intermediate
// events between the earliest checkin and the latest checkout are ignored for
// the hours calculation while remaining in the audit log.
func Derive(employeeID string, workDate time.Time, events []Event, onLeave bool, p DerivePolicy) DayRecord {
	var first, last *time.Time
	for i := range events {
		e := &events[i]
		switch e.CheckType {
		case CheckTypeIn:
			if first == nil || e.Timestamp.Before(*first) {
				ts := e.Timestamp
				first = &ts
			}
		case CheckTypeOut:
			if last == nil || e.Timestamp.After(*last) {
				ts := e.Timestamp
				last = &ts
			}
		}
	}

	status, hours := DeriveFromTimes(first, last, onLeave, p)
	return DayRecord{
		EmployeeID: employeeID,
		WorkDate:   workDate,
		CheckIn:    first,
		CheckOut:   last,
		TotalHours: hours,
		Status:     status,
	}
}

// DeriveFromTimes computes status and worked hours from the reduced
// first-checkin / last-checkout pair.
func DeriveFromTimes(checkIn, checkOut *time.Time, onLeave bool, p DerivePolicy) (Status, *decimal.Decimal) {
	if checkIn == nil {
		if onLeave {
			return StatusLeave, nil
		}
		return StatusAbsent, nil
	}

	if checkOut == nil {
		return StatusNotCheckedOut, nil
	}

	hours := checkOut.Sub(*checkIn).Hours()
	if hours < 0 {
		// Clock skew or corrected data. Clamp, never negative.
		hours = 0
	}
	total := decimal.NewFromFloat(hours).Round(2)

	if isLate(*checkIn, p) {
		return StatusLate, &total
	}
	return StatusPresent, &total
}

func isLate(checkIn time.Time, p DerivePolicy) bool {
	local := checkIn.In(p.location())
	return local.Hour()*60+local.Minute() > p.LateThresholdMinutes
}
