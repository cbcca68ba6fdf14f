package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/metrics"
	"github.com/trackware/gatekeep/internal/gatekeep/store"
	"github.com/trackware/gatekeep/pkg/slogx"
)

// ResolverService answers the single question the tracking infrastructure
// depends on for security: may this hostname be tracked, and under which
// policy. It is stateless per call and never mutates; every ambiguous state
// resolves toward "do not track".
type ResolverService struct {
	Store   store.Store
	Metrics *metrics.Metrics // optional
}

// Resolve maps a raw hostname to a ResolvedPolicy or a typed refusal:
//
//   - domain.ErrInvalidDomain for malformed input,
//   - ErrUnauthorizedDomain for unindexed domains and inactive clients
//     (indistinguishable, so a 404 cannot leak client existence),
//   - ErrInconsistentIndex for data-integrity faults, logged loudly because
//     they indicate a bug in the mutation path, not an access decision.
//
// Resolution never retries: every failure is either a legitimate "no" or a
// data bug a retry will not fix.
func (s *ResolverService) Resolve(ctx context.Context, hostname string) (domain.ResolvedPolicy, error) {
	start := time.Now()
	l := slogx.FromContext(ctx)

	dom, err := domain.NormalizeDomain(hostname)
	if err != nil {
		s.observe(metrics.OutcomeInvalid, start)
		return domain.ResolvedPolicy{}, err
	}

	entry, err := s.Store.Domains().GetDomain(ctx, dom)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The common "no" path: cheap, side-effect-free, not logged.
			s.observe(metrics.OutcomeUnauthorized, start)
			return domain.ResolvedPolicy{}, ErrUnauthorizedDomain
		}
		s.observe(metrics.OutcomeError, start)
		return domain.ResolvedPolicy{}, err
	}

	client, err := s.Store.Clients().GetClientByID(ctx, entry.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// An indexed domain whose client record is gone is a breach of
			// the mutation path's ordering discipline, not an access miss.
			l.Error("domain index references missing client",
				"domain", dom,
				"client_id", entry.ClientID,
			)
			s.observe(metrics.OutcomeInconsistent, start)
			return domain.ResolvedPolicy{}, fmt.Errorf("%w: domain %q references missing client %q",
				ErrInconsistentIndex, dom, entry.ClientID)
		}
		s.observe(metrics.OutcomeError, start)
		return domain.ResolvedPolicy{}, err
	}

	if !client.IsActive {
		s.observe(metrics.OutcomeUnauthorized, start)
		return domain.ResolvedPolicy{}, ErrUnauthorizedDomain
	}

	policy, err := assemblePolicy(client)
	if err != nil {
		l.Error("client configuration fault",
			"domain", dom,
			"client_id", client.ID,
			"error", err,
		)
		s.observe(metrics.OutcomeInconsistent, start)
		return domain.ResolvedPolicy{}, err
	}

	s.observe(metrics.OutcomeAuthorized, start)
	return policy, nil
}

// assemblePolicy derives the policy fields from the client's privacy level.
// The mapping is fixed business logic, deliberately not configurable.
func assemblePolicy(c domain.Client) (domain.ResolvedPolicy, error) {
	p := domain.ResolvedPolicy{
		ClientID:     c.ID,
		PrivacyLevel: c.PrivacyLevel,
		Features:     c.Features,
	}

	switch c.PrivacyLevel {
	case domain.PrivacyStandard:
		p.IPCollection = domain.IPCollectionPolicy{Enabled: true}
		p.Consent = domain.ConsentPolicy{Required: false, DefaultBehavior: domain.ConsentAllow}
	case domain.PrivacyGDPR, domain.PrivacyHIPAA:
		// hipaa shares gdpr's IP handling; the caller branches on
		// privacy_level itself for its enhanced audit obligations.
		if c.IPSalt == "" {
			// Hashing with an empty key is worse than failing the request.
			return domain.ResolvedPolicy{}, fmt.Errorf("%w: client %q requires IP hashing but has no salt",
				ErrInconsistentIndex, c.ID)
		}
		p.IPCollection = domain.IPCollectionPolicy{
			Enabled:      false,
			HashRequired: true,
			Salt:         c.IPSalt,
		}
		p.Consent = domain.ConsentPolicy{Required: true, DefaultBehavior: domain.ConsentBlock}
	default:
		return domain.ResolvedPolicy{}, fmt.Errorf("%w: client %q has unknown privacy_level %q",
			ErrInconsistentIndex, c.ID, c.PrivacyLevel)
	}

	p.Deployment = domain.DeploymentPolicy{Type: c.DeploymentType}
	if c.DeploymentType == domain.DeploymentDedicated {
		if c.VMHostname == "" {
			// Routing to an empty host is worse than failing the request.
			return domain.ResolvedPolicy{}, fmt.Errorf("%w: dedicated client %q has no vm_hostname",
				ErrInconsistentIndex, c.ID)
		}
		p.Deployment.Hostname = c.VMHostname
	}

	return p, nil
}

func (s *ResolverService) observe(outcome string, start time.Time) {
	if s.Metrics != nil {
		s.Metrics.ObserveResolve(outcome, time.Since(start))
	}
}
