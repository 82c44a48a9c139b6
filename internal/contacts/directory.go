package contacts

import (
	"context"

	"github.com/nahuelseoane/discobolo-birthday-sender/internal/model"
)

// Directory is the contacts provider consumed by the birthday pipeline.
// This abstraction keeps the Google People client swappable in tests.
type Directory interface {
	// ResolveGroup maps a group display name to its resource ID, falling
	// back to fallbackID when the name cannot be found.
	ResolveGroup(ctx context.Context, name, fallbackID string) (string, error)

	// Contacts returns all connections with their names, emails, birthdays
	// and group memberships.
	Contacts(ctx context.Context) ([]model.Contact, error)
}
