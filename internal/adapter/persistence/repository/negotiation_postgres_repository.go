package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// negotiationSchema is applied by EnsureSchema. details is TEXT rather than
// JSONB so payloads keep their exact bytes.
const negotiationSchema = `
CREATE TABLE IF NOT EXISTS contract_negotiations (
	id          TEXT PRIMARY KEY,
	business_id TEXT NOT NULL,
	agency_id   TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS negotiation_steps (
	contract_id    TEXT NOT NULL REFERENCES contract_negotiations(id),
	step_number    INTEGER NOT NULL,
	id             TEXT NOT NULL UNIQUE,
	step_type      TEXT NOT NULL,
	status         TEXT NOT NULL,
	responder_role TEXT NOT NULL,
	round          INTEGER NOT NULL DEFAULT 0,
	response_type  TEXT NOT NULL DEFAULT '',
	details        TEXT NOT NULL DEFAULT '{}',
	created_at     TIMESTAMPTZ NOT NULL,
	completed_at   TIMESTAMPTZ,
	PRIMARY KEY (contract_id, step_number)
);
`

const uniqueViolation = "23505"

// PgxPool is the part of *pgxpool.Pool the repository needs.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ PgxPool = (*pgxpool.Pool)(nil)

// NegotiationPostgresRepository persists negotiations in PostgreSQL through a
// pgx pool. AtomicAdvance locks the contract row, then completes the pending
// step with a conditional UPDATE, all in one transaction.
type NegotiationPostgresRepository struct {
	db PgxPool
}

var _ interfaces.IStepRepository = (*NegotiationPostgresRepository)(nil)

func NewNegotiationPostgresRepository(db PgxPool) *NegotiationPostgresRepository {
	return &NegotiationPostgresRepository{db: db}
}

func (r *NegotiationPostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, negotiationSchema)
	return err
}

func (r *NegotiationPostgresRepository) LoadContract(ctx context.Context, contractID string) (entities.ContractNegotiation, error) {
	var c entities.ContractNegotiation
	var status string
	err := r.db.QueryRow(ctx, `SELECT id,business_id,agency_id,title,description,status,created_at,updated_at
FROM contract_negotiations WHERE id=$1`, contractID).
		Scan(&c.ID, &c.BusinessID, &c.AgencyID, &c.Title, &c.Description, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ContractNegotiation{}, nil
		}
		return entities.ContractNegotiation{}, err
	}
	c.Status = entities.ContractStatus(status)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *NegotiationPostgresRepository) LoadSteps(ctx context.Context, contractID string) ([]entities.NegotiationStep, error) {
	rows, err := r.db.Query(ctx, `SELECT id,contract_id,step_number,step_type,status,responder_role,round,response_type,details,created_at,completed_at
FROM negotiation_steps WHERE contract_id=$1 ORDER BY step_number`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]entities.NegotiationStep, 0)
	for rows.Next() {
		var (
			s                                              entities.NegotiationStep
			stepType, status, responder, responseType, raw string
			completedAt                                    *time.Time
		)
		if err := rows.Scan(&s.ID, &s.ContractID, &s.StepNumber, &stepType, &status, &responder, &s.Round, &responseType, &raw, &s.CreatedAt, &completedAt); err != nil {
			return nil, err
		}
		s.StepType = entities.StepType(stepType)
		s.Status = entities.StepStatus(status)
		s.ResponderRole = entities.PartyRole(responder)
		s.ResponseType = entities.ResponseType(responseType)
		s.Details = json.RawMessage(raw)
		s.CreatedAt = s.CreatedAt.UTC()
		if completedAt != nil {
			at := completedAt.UTC()
			s.CompletedAt = &at
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

func (r *NegotiationPostgresRepository) CreateContract(ctx context.Context, contract entities.ContractNegotiation, initialStep, firstPendingStep entities.NegotiationStep) (entities.ContractNegotiation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return entities.ContractNegotiation{}, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `INSERT INTO contract_negotiations(id,business_id,agency_id,title,description,status,created_at,updated_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		contract.ID, contract.BusinessID, contract.AgencyID, contract.Title, contract.Description, string(contract.Status), contract.CreatedAt, contract.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ContractNegotiation{}, fmt.Errorf("%w: %s", ErrContractExists, contract.ID)
		}
		return entities.ContractNegotiation{}, err
	}
	for _, s := range []entities.NegotiationStep{initialStep, firstPendingStep} {
		if err := insertStep(ctx, tx, s); err != nil {
			return entities.ContractNegotiation{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return entities.ContractNegotiation{}, err
	}
	return contract, nil
}

func (r *NegotiationPostgresRepository) AtomicAdvance(ctx context.Context, contractID string, completed entities.NegotiationStep, next *entities.NegotiationStep, newStatus *entities.ContractStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Locks the contract row so concurrent advances on it serialize here.
	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM contract_negotiations WHERE id=$1 FOR UPDATE`, contractID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: contract %s not found", interfaces.ErrStepNotPending, contractID)
		}
		return err
	}
	if entities.ContractStatus(status) != entities.ContractStatusNegotiating {
		return fmt.Errorf("%w: contract %s is %s", interfaces.ErrStepNotPending, contractID, status)
	}

	tag, err := tx.Exec(ctx, `UPDATE negotiation_steps
SET status=$1, response_type=$2, details=$3, completed_at=$4
WHERE contract_id=$5 AND id=$6 AND status='pending'`,
		string(entities.StepStatusCompleted), string(completed.ResponseType), detailsString(completed.Details), completed.CompletedAt, contractID, completed.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%w: step %s", interfaces.ErrStepNotPending, completed.ID)
	}

	if next != nil {
		if err := insertStep(ctx, tx, *next); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: step number %d is taken", interfaces.ErrStepNotPending, next.StepNumber)
			}
			return err
		}
	}

	if newStatus != nil {
		_, err = tx.Exec(ctx, `UPDATE contract_negotiations SET status=$1, updated_at=$2 WHERE id=$3`,
			string(*newStatus), completed.CompletedAt, contractID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func insertStep(ctx context.Context, tx pgx.Tx, s entities.NegotiationStep) error {
	_, err := tx.Exec(ctx, `INSERT INTO negotiation_steps(contract_id,step_number,id,step_type,status,responder_role,round,response_type,details,created_at,completed_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		s.ContractID, s.StepNumber, s.ID, string(s.StepType), string(s.Status), string(s.ResponderRole), s.Round, string(s.ResponseType), detailsString(s.Details), s.CreatedAt, s.CompletedAt)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
