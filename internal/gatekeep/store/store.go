package store

import (
	"context"
	"errors"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep the client and domain-index concerns
// separate while sharing one transaction scope.
type Store interface {
	Clients() Clients
	Domains() Domains

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this over
	// Tx for the create/delete orderings that span both repositories.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByID returns a client configuration record by id.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client (id is provided by the service via ULID).
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClient replaces the full record identified by c.ID, preserving
	// id and created_at, and bumps updated_at.
	UpdateClient(ctx context.Context, c domain.Client) error

	// DeleteClient removes a client record. The service layer is responsible
	// for detaching domains first (domain-then-client ordering).
	DeleteClient(ctx context.Context, id string) error

	// IsEmpty returns true if there are no clients.
	IsEmpty(ctx context.Context) (bool, error)
}

type Domains interface {
	// GetDomain point-looks-up an index entry by its normalized hostname.
	GetDomain(ctx context.Context, dom string) (domain.DomainEntry, error)

	// ListDomainsByClient returns every entry owned by a client, primary first.
	ListDomainsByClient(ctx context.Context, clientID string) ([]domain.DomainEntry, error)

	// CreateDomain inserts an index entry. Returns ErrAlreadyExists if the
	// hostname is taken (by any client; the service decides idempotent vs
	// conflict).
	CreateDomain(ctx context.Context, e domain.DomainEntry) error

	// UpdateDomainPrimary flips the is_primary flag on an existing entry.
	UpdateDomainPrimary(ctx context.Context, dom string, isPrimary bool) error

	// DeleteDomain removes an entry by hostname.
	DeleteDomain(ctx context.Context, dom string) error

	// DeleteDomainsByClient removes every entry owned by a client and
	// returns how many were removed.
	DeleteDomainsByClient(ctx context.Context, clientID string) (int64, error)

	// CountDomainsByClient returns the number of entries a client owns.
	CountDomainsByClient(ctx context.Context, clientID string) (int64, error)

	// GetPrimaryDomain returns the client's primary entry, ErrNotFound if none.
	GetPrimaryDomain(ctx context.Context, clientID string) (domain.DomainEntry, error)

	// ListOrphanedDomains returns entries whose client_id has no matching
	// client record. Used by the consistency sweeper; an orphan is always a
	// data-integrity fault.
	ListOrphanedDomains(ctx context.Context) ([]domain.DomainEntry, error)
}
