package enums

import "fmt"

// RSVPStatus tracks a guest's reply.
type RSVPStatus string

const (
	RSVPPending RSVPStatus = "pending"
	RSVPYes     RSVPStatus = "yes"
	RSVPNo      RSVPStatus = "no"
	RSVPMaybe   RSVPStatus = "maybe"
)

var validRSVPStatuses = []RSVPStatus{RSVPPending, RSVPYes, RSVPNo, RSVPMaybe}

func (s RSVPStatus) String() string {
	return string(s)
}

func (s RSVPStatus) IsValid() bool {
	for _, candidate := range validRSVPStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRSVPStatus converts raw input into an RSVPStatus.
func ParseRSVPStatus(value string) (RSVPStatus, error) {
	for _, candidate := range validRSVPStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rsvp status %q", value)
}

// GuestSide tells which family invited the guest.
type GuestSide string

const (
	GuestSideBride GuestSide = "bride"
	GuestSideGroom GuestSide = "groom"
)

func (s GuestSide) String() string {
	return string(s)
}

func (s GuestSide) IsValid() bool {
	switch s {
	case GuestSideBride, GuestSideGroom:
		return true
	}
	return false
}
