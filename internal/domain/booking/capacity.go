package booking

// Bookings in these statuses do not hold a seat.
var UncountedStatuses = []Status{StatusCancelled, StatusWaitlisted}

func HoldsSeat(s Status) bool {
	for _, u := range UncountedStatuses {
		if s == u {
			return false
		}
	}
	return true
}

// HasRoom reports whether one more active booking fits. A nil capacity is
// unlimited.
func HasRoom(capacity *int, active int64) bool {
	if capacity == nil {
		return true
	}
	return active < int64(*capacity)
}

// RemainingCapacity returns nil for unlimited programs.
func RemainingCapacity(capacity *int, active int64) *int {
	if capacity == nil {
		return nil
	}
	left := *capacity - int(active)
	if left < 0 {
		left = 0
	}
	return &left
}
