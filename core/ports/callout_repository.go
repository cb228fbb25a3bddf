package ports

import (
	"time"

	"github.com/claritycare/roster-engine/core/domain"
)

// CalloutRepository reads callouts covering a calendar date. The engine
// filters further by entity kind/id and intra-day window itself (§4.2
// callout_conflict).
type CalloutRepository interface {
	List() ([]*domain.Callout, error)
	ListCoveringDate(date time.Time) ([]*domain.Callout, error)
}
