// Package shipping estimates delivery dates in business days.
//
// Dates are advanced in the location carried by the base time; in the
// checkout flow that is the host's local time. There is no timezone
// normalisation and no holiday calendar.
package shipping

import "time"

// DefaultLeadTime is the number of business days between an order and its
// estimated delivery.
const DefaultLeadTime = 2

// IsBusinessDay reports whether t falls on Monday through Friday.
func IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// AddBusinessDays advances base one calendar day at a time until n weekdays
// have been counted. The time of day is kept. n <= 0 returns base.
func AddBusinessDays(base time.Time, n int) time.Time {
	d := base
	for added := 0; added < n; {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			added++
		}
	}
	return d
}

// EstimateDelivery returns the delivery estimate for an order placed at t.
func EstimateDelivery(t time.Time) time.Time {
	return AddBusinessDays(t, DefaultLeadTime)
}
