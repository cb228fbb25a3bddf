package engine

// Status codes returned in Result.Status. Run never panics or returns a Go
// error for bad input (§7); a missing date or a callout naming an unknown
// entity instead comes back as a Result with Success=false, an empty
// schedule, and one of these statuses describing why. An empty client or
// therapist list returns StatusMissingData with Success=true.
const (
	StatusOK            = "OK"
	StatusMissingDate   = "MISSING_DATE"
	StatusMissingData   = "MISSING_DATA"
	StatusUnknownEntity = "UNKNOWN_ENTITY"
)
