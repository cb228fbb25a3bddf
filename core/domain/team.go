package domain

// Team is used only for soft affinity scoring; a schedule that crosses team
// boundaries is never invalid, only penalized (§4.10 team_alignment_mismatch).
type Team struct {
	ID        TeamID       `json:"id"`
	Name      string       `json:"name"`
	Color     string       `json:"color"`
	CreatedAt UTCTimestamp `json:"createdAt"`
	UpdatedAt UTCTimestamp `json:"updatedAt"`
}
