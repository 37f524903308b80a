package tournament

import (
	"errors"
	"fmt"
)

// Repository sentinels, matched with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrAlreadyCompleted = errors.New("already completed")
	ErrConflict         = errors.New("status conflict")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")
)

// RejectionKind separates ordinary policy refusals from anti-cheat ones.
type RejectionKind string

const (
	KindPolicy    RejectionKind = "policy"
	KindAntiCheat RejectionKind = "anti-cheat"
)

// Reason identifies why a request was refused.
type Reason string

const (
	ReasonQualifierNotOpen  Reason = "qualifier_not_open"
	ReasonAlreadyEntered    Reason = "already_entered"
	ReasonAlreadySubmitted  Reason = "already_submitted"
	ReasonTooFast           Reason = "too_fast"
	ReasonNotFinalist       Reason = "not_finalist"
	ReasonFinalNotLive      Reason = "final_not_live"
	ReasonFinalNotStarted   Reason = "final_not_started"
	ReasonFinalEnded        Reason = "final_ended"
	ReasonFinalistCompleted Reason = "finalist_completed"
)

// Rejection is a refused request. It is an expected outcome, not a fault.
type Rejection struct {
	Kind   RejectionKind `json:"kind"`
	Reason Reason        `json:"reason"`
	Detail string        `json:"detail"`
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejection (%s): %s", r.Kind, r.Reason, r.Detail)
}

// AsRejection extracts a *Rejection from err.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

func reject(reason Reason, detail string) *Rejection {
	rejectionsTotal.WithLabelValues(string(KindPolicy), string(reason)).Inc()
	return &Rejection{Kind: KindPolicy, Reason: reason, Detail: detail}
}

func rejectCheat(reason Reason, detail string) *Rejection {
	rejectionsTotal.WithLabelValues(string(KindAntiCheat), string(reason)).Inc()
	return &Rejection{Kind: KindAntiCheat, Reason: reason, Detail: detail}
}
