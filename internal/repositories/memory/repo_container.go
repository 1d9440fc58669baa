package memory

import (
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
)

// NewRepositoryProvider exposes store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: store,
		Feed:       store,
		Publisher:  store,
		Close:      func() {},
	}
}
