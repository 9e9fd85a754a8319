package domain

// Order status values. Transitions only move forward through the
// preparation pipeline; cancelled is reachable from any non-terminal state.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusPreparing  = "preparing"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

var statusOrder = map[string]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusPreparing:  2,
	StatusDelivering: 3,
	StatusCompleted:  4,
}

func IsValidStatus(status string) bool {
	if status == StatusCancelled {
		return true
	}
	_, ok := statusOrder[status]
	return ok
}

func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// CanTransition reports whether an order may move from one status to the next.
// Only single forward steps are allowed, except cancellation which is open to
// every non-terminal state.
func CanTransition(from, to string) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return false
	}
	if IsTerminalStatus(from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusOrder[to] == statusOrder[from]+1
}
