package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/trackware/gatekeep/internal/gatekeep/domain"
	"github.com/trackware/gatekeep/internal/gatekeep/store"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type clientsRepo struct {
	q querier
}

const clientColumns = `id, name, email, owner, billing_entity, client_type,
	privacy_level, deployment_type, vm_hostname, ip_salt, is_active, features,
	created_at, updated_at`

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	return scanClient(row)
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	features, err := encodeFeatures(c.Features)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, owner, billing_entity, client_type,
			privacy_level, deployment_type, vm_hostname, ip_salt, is_active,
			features, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Owner, c.BillingEntity, string(c.ClientType),
		string(c.PrivacyLevel), string(c.DeploymentType),
		mapStringNull(c.VMHostname), mapStringNull(c.IPSalt), c.IsActive,
		features, now, now,
	)
	return mapUniqueViolation(err)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	features, err := encodeFeatures(c.Features)
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE clients
		SET name = ?, email = ?, owner = ?, billing_entity = ?, client_type = ?,
			privacy_level = ?, deployment_type = ?, vm_hostname = ?, ip_salt = ?,
			is_active = ?, features = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Email, c.Owner, c.BillingEntity, string(c.ClientType),
		string(c.PrivacyLevel), string(c.DeploymentType),
		mapStringNull(c.VMHostname), mapStringNull(c.IPSalt), c.IsActive,
		features, time.Now().UTC(), c.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c           domain.Client
		clientType  string
		privacy     string
		deployment  string
		vmHostname  sql.NullString
		ipSalt      sql.NullString
		featuresRaw string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Owner, &c.BillingEntity, &clientType,
		&privacy, &deployment, &vmHostname, &ipSalt, &c.IsActive, &featuresRaw,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}

	c.ClientType = domain.ClientType(clientType)
	c.PrivacyLevel = domain.PrivacyLevel(privacy)
	c.DeploymentType = domain.DeploymentType(deployment)
	c.VMHostname = mapNullString(vmHostname)
	c.IPSalt = mapNullString(ipSalt)

	c.Features, err = decodeFeatures(featuresRaw)
	if err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var serr *sqlitedrv.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return store.ErrAlreadyExists
		}
	}
	return err
}
