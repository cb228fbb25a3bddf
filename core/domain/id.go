package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ClientID string
type TherapistID string
type TeamID string
type CalloutID string
type ScheduleEntryID string
type BaseScheduleID string

func NewClientID() ClientID {
	return ClientID(generatePrefixedUUID("client"))
}

func NewTherapistID() TherapistID {
	return TherapistID(generatePrefixedUUID("therapist"))
}

func NewTeamID() TeamID {
	return TeamID(generatePrefixedUUID("team"))
}

func NewCalloutID() CalloutID {
	return CalloutID(generatePrefixedUUID("callout"))
}

func NewScheduleEntryID() ScheduleEntryID {
	return ScheduleEntryID(generatePrefixedUUID("entry"))
}

func NewBaseScheduleID() BaseScheduleID {
	return BaseScheduleID(generatePrefixedUUID("baseschedule"))
}

func generatePrefixedUUID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", ""))
}
