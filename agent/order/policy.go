package order

import "time"

// RemorseWindow is the post-purchase window during which a customer may
// self-cancel without restriction.
const RemorseWindow = 45 * time.Minute

// Remorse describes where an order sits relative to the remorse window.
type Remorse struct {
	InRemorsePeriod bool `json:"in_remorse_period"`
	MinutesLeft     int  `json:"minutes_left"`
	CanSelfCancel   bool `json:"can_self_cancel"`
}

// EvaluateRemorse is a pure function of the order creation time and the
// current clock. MinutesLeft floors at zero once the window has passed.
func EvaluateRemorse(createdAt, now time.Time) Remorse {
	end := createdAt.Add(RemorseWindow)
	in := now.Before(end)

	minutesLeft := int(end.Sub(now).Minutes())
	if minutesLeft < 0 {
		minutesLeft = 0
	}

	return Remorse{
		InRemorsePeriod: in,
		MinutesLeft:     minutesLeft,
		CanSelfCancel:   in,
	}
}

// CanReturn reports return eligibility: only orders that left the
// warehouse qualify.
func CanReturn(status Status) bool {
	return status == StatusShipped || status == StatusDelivered
}
