package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/store"
)

// HousekeepingService periodically sweeps the store for consistency faults:
// orphaned domain index entries, dedicated clients without a routing
// hostname, and hashing-level clients without a salt. It only reports;
// repair is an operator decision, and the resolver already fails closed on
// every fault found here. The sweep exists so faults surface before the
// first affected tracking request does.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a sweeper with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop. Non-blocking; call Stop to shut
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("consistency sweeper started", "interval", s.Interval)
}

// Stop shuts down the background worker, blocking until any in-progress
// sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("consistency sweeper stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep runs all consistency checks. Each check is independent; a failure in
// one does not stop the others.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	faults := 0
	faults += s.reportOrphanedDomains(ctx)
	faults += s.reportMisconfiguredClients(ctx)

	if faults > 0 {
		s.Logger.Error("consistency sweep found faults", "faults", faults)
	} else {
		s.Logger.Debug("consistency sweep clean")
	}
}

func (s *HousekeepingService) reportOrphanedDomains(ctx context.Context) int {
	orphans, err := s.Store.Domains().ListOrphanedDomains(ctx)
	if err != nil {
		s.Logger.Error("failed to scan for orphaned domains", "error", err)
		return 0
	}
	for _, e := range orphans {
		s.Logger.Error("orphaned domain index entry",
			"domain", e.Domain,
			"client_id", e.ClientID,
		)
	}
	return len(orphans)
}

func (s *HousekeepingService) reportMisconfiguredClients(ctx context.Context) int {
	clients, err := s.Store.Clients().ListClients(ctx)
	if err != nil {
		s.Logger.Error("failed to list clients", "error", err)
		return 0
	}

	faults := 0
	for _, c := range clients {
		if c.DeploymentType == domain.DeploymentDedicated && c.VMHostname == "" {
			s.Logger.Error("dedicated client without vm_hostname", "client_id", c.ID)
			faults++
		}
		if c.PrivacyLevel.RequiresIPHashing() && c.IPSalt == "" {
			s.Logger.Error("hashing client without ip_salt",
				"client_id", c.ID,
				"privacy_level", c.PrivacyLevel,
			)
			faults++
		}
	}
	return faults
}
