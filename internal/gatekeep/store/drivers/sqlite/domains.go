package sqlite

import (
	"context"
	"time"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
)

type domainsRepo struct {
	q querier
}

const domainColumns = `domain, client_id, is_primary, created_at`

func (r *domainsRepo) GetDomain(ctx context.Context, dom string) (domain.DomainEntry, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE domain = ?`, dom)

	var e domain.DomainEntry
	if err := row.Scan(&e.Domain, &e.ClientID, &e.IsPrimary, &e.CreatedAt); err != nil {
		return domain.DomainEntry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *domainsRepo) ListDomainsByClient(ctx context.Context, clientID string) ([]domain.DomainEntry, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+domainColumns+` FROM domains
		 WHERE client_id = ?
		 ORDER BY is_primary DESC, domain ASC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DomainEntry
	for rows.Next() {
		var e domain.DomainEntry
		if err := rows.Scan(&e.Domain, &e.ClientID, &e.IsPrimary, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *domainsRepo) CreateDomain(ctx context.Context, e domain.DomainEntry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO domains (domain, client_id, is_primary, created_at)
		 VALUES (?, ?, ?, ?)`,
		e.Domain, e.ClientID, e.IsPrimary, createdAt)
	return mapUniqueViolation(err)
}

func (r *domainsRepo) UpdateDomainPrimary(ctx context.Context, dom string, isPrimary bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE domains SET is_primary = ? WHERE domain = ?`, isPrimary, dom)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *domainsRepo) DeleteDomain(ctx context.Context, dom string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM domains WHERE domain = ?`, dom)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *domainsRepo) DeleteDomainsByClient(ctx context.Context, clientID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM domains WHERE client_id = ?`, clientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *domainsRepo) CountDomainsByClient(ctx context.Context, clientID string) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM domains WHERE client_id = ?`, clientID).Scan(&count)
	return count, err
}

func (r *domainsRepo) GetPrimaryDomain(ctx context.Context, clientID string) (domain.DomainEntry, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+domainColumns+` FROM domains
		 WHERE client_id = ? AND is_primary = 1`, clientID)

	var e domain.DomainEntry
	if err := row.Scan(&e.Domain, &e.ClientID, &e.IsPrimary, &e.CreatedAt); err != nil {
		return domain.DomainEntry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *domainsRepo) ListOrphanedDomains(ctx context.Context) ([]domain.DomainEntry, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT d.domain, d.client_id, d.is_primary, d.created_at
		 FROM domains d
		 LEFT JOIN clients c ON c.id = d.client_id
		 WHERE c.id IS NULL
		 ORDER BY d.domain ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DomainEntry
	for rows.Next() {
		var e domain.DomainEntry
		if err := rows.Scan(&e.Domain, &e.ClientID, &e.IsPrimary, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
