package domain

// Therapist is a clinician available for assignment. Qualifications gates
// credential_mismatch (§4.2); AlliedHealthCapabilities gates
// ah_qualification_missing.
type Therapist struct {
	ID                       TherapistID              `json:"id"`
	Name                     string                   `json:"name"`
	Email                    Email                    `json:"email"`
	PhoneNumber              PhoneNumber              `json:"phoneNumber"`
	TeamID                   *TeamID                  `json:"teamId,omitempty"`
	Role                     Role                     `json:"role"`
	Qualifications           []QualificationTag       `json:"qualifications"`
	AlliedHealthCapabilities []AlliedHealthKind       `json:"alliedHealthCapabilities"`

	CreatedAt UTCTimestamp `json:"createdAt"`
	UpdatedAt UTCTimestamp `json:"updatedAt"`
}

// MeetsRequirements reports whether the therapist carries every one of the
// client's insurance requirements.
func (t Therapist) MeetsRequirements(required []QualificationTag) bool {
	return HasAllQualifications(t.Qualifications, required)
}

// CanDeliver reports whether the therapist may deliver the given
// allied-health kind: they must both support the kind and hold its
// certificate qualification.
func (t Therapist) CanDeliver(kind AlliedHealthKind) bool {
	supports := false
	for _, k := range t.AlliedHealthCapabilities {
		if k == kind {
			supports = true
			break
		}
	}
	if !supports {
		return false
	}
	for _, tag := range t.Qualifications {
		if tag == kind.CertificateTag() {
			return true
		}
	}
	return false
}
