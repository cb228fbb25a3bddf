package domain

import "time"

// EntityKind distinguishes which side of a booking a Callout targets.
type EntityKind string

const (
	EntityKindClient    EntityKind = "client"
	EntityKindTherapist EntityKind = "therapist"
)

// Callout is a pre-declared unavailability window for a client or therapist,
// covering an inclusive calendar date range and an intra-day time window
// (§4.2 callout_conflict).
type Callout struct {
	ID         CalloutID  `json:"id"`
	EntityKind EntityKind `json:"entityKind"`
	EntityID   string     `json:"entityId"`
	DateStart  time.Time  `json:"dateStart"`
	DateEnd    time.Time  `json:"dateEnd"`
	TimeWindow TimeWindow `json:"timeWindow"`
	Reason     string     `json:"reason,omitempty"`

	CreatedAt UTCTimestamp `json:"createdAt"`
	UpdatedAt UTCTimestamp `json:"updatedAt"`
}

// CoversDate reports whether the callout's inclusive date range contains T.
func (c Callout) CoversDate(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(c.DateStart)) && !d.After(truncateToDate(c.DateEnd))
}

// Matches reports whether the callout targets the given therapist and/or
// client of an entry (either may be empty).
func (c Callout) Matches(therapistID TherapistID, clientID *ClientID) bool {
	switch c.EntityKind {
	case EntityKindTherapist:
		return c.EntityID == string(therapistID)
	case EntityKindClient:
		return clientID != nil && c.EntityID == string(*clientID)
	default:
		return false
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
