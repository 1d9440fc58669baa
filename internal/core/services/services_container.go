package services

import (
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
)

// ContainerOptions carries the ledger settings the services need.
type ContainerOptions struct {
	Clock              domain.Clock
	Location           *time.Location
	SnapshotWindowDays int
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ContainerOptions) *portssvc.ServiceContainer {
	if opts.Clock == nil {
		opts.Clock = domain.SystemClock{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	container := &portssvc.ServiceContainer{}

	// The tracker comes first since the ledger reports store failures to it
	container.Sync = NewSyncTracker(repos.LedgerRepo, repos.Publisher, opts.Clock)

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		repos.Feed,
		WithClock(opts.Clock),
		WithLocation(opts.Location),
		WithSnapshotWindow(opts.SnapshotWindowDays),
		WithSyncTracker(container.Sync),
	)

	container.Reporting = NewReportingService(
		repos.LedgerRepo,
		WithReportingClock(opts.Clock),
		WithReportingLocation(opts.Location),
		WithReportingSyncTracker(container.Sync),
	)

	return container
}
