package ports

import "github.com/claritycare/roster-engine/core/domain"

// ClientRepository is the read-through snapshot surface over the clients
// table. Bulk CRUD, the interactive editor, and CSV import are the store's
// concern (§1) — the engine only needs List.
type ClientRepository interface {
	List() ([]*domain.Client, error)
	GetByID(id domain.ClientID) (*domain.Client, error)
}
