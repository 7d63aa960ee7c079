package domain

import (
	"errors"
	"fmt"
)

type Action string

const (
	ActionCheckIn  Action = "checkin"
	ActionCheckOut Action = "checkout"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrEmptyUser     = errors.New("user identifier is required")
)

// ParseAction validates a transport-supplied action name before it is
// allowed anywhere near the state machine.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionCheckIn, ActionCheckOut:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// DayRecord holds the three field values of one user for one day-slot.
// Empty strings mean the field has not been written yet.
type DayRecord struct {
	Slot     DaySlot
	CheckIn  string
	CheckOut string
	Duration string
}

type BucketTotal struct {
	Label string
	Value string
}

type UserReport struct {
	UserID string
	Row    int
	Days   []DayRecord
	Totals []BucketTotal
}

type PeriodReport struct {
	Period Period
	Users  []UserReport
}
