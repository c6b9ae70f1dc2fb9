package appointment

// Action is a status change the admin list offers for an appointment.
type Action struct {
	Label  string
	Target Status
}

// offered maps each status to the actions shown for it. Completed has none.
var offered = map[Status][]Action{
	StatusPending: {
		{Label: "Approve", Target: StatusApproved},
		{Label: "Reject", Target: StatusRejected},
	},
	StatusApproved: {
		{Label: "Complete", Target: StatusCompleted},
		{Label: "Cancel", Target: StatusCancelled},
	},
	StatusRejected: {
		{Label: "Reset to Pending", Target: StatusPending},
	},
	StatusCancelled: {
		{Label: "Reset to Pending", Target: StatusPending},
	},
}

// AvailableActions returns a copy of the actions offered for s.
func AvailableActions(s Status) []Action {
	acts := offered[s]
	out := make([]Action, len(acts))
	copy(out, acts)
	return out
}

func IsOffered(from, to Status) bool {
	for _, a := range offered[from] {
		if a.Target == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted
}

// CheckTransition is the only local guard before a status update is sent:
// a Pending appointment may go to Approved or Rejected and nowhere else.
// Every other pair is left to the backend.
func CheckTransition(from, to Status) error {
	if !to.Valid() {
		return ErrUnknownStatus
	}
	if from == StatusPending && to != StatusApproved && to != StatusRejected {
		return ErrInvalidStatusTransition
	}
	return nil
}
