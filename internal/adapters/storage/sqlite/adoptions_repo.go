package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

type AdoptionsRepo struct {
	db *sql.DB
}

var _ adoptions.Repository = (*AdoptionsRepo)(nil)

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

const requestColumns = `id, pet_id, adopter_name, email, id_proof, created_at`

// Create inserta solo si la mascota existe; si no, pets.ErrNotFound.
func (r *AdoptionsRepo) Create(ctx context.Context, req adoptions.Request) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_requests (`+requestColumns+`)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM pets WHERE id = ?)
	`,
		req.ID,
		req.PetID,
		req.AdopterName,
		req.Email,
		req.IDProof,
		toMillis(req.CreatedAt),
		req.PetID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Request{}, adoptions.ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return req, nil
}

func (r *AdoptionsRepo) List(ctx context.Context) ([]adoptions.Request, error) {
	return r.query(ctx, `SELECT `+requestColumns+` FROM adoption_requests ORDER BY created_at ASC, rowid ASC`)
}

func (r *AdoptionsRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	return r.query(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE pet_id = ? ORDER BY created_at ASC, rowid ASC`, petID)
}

// Approve: DELETE ... RETURNING decide quién gana. Un segundo Approve (o uno concurrente,
// que espera el lock de escritura) no encuentra la fila y termina como no-op.
func (r *AdoptionsRepo) Approve(ctx context.Context, requestID string) (adoptions.Approval, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return adoptions.Approval{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var petID string
	err = tx.QueryRowContext(ctx, `DELETE FROM adoption_requests WHERE id = ? RETURNING pet_id`, requestID).Scan(&petID)
	if errors.Is(err, sql.ErrNoRows) {
		return adoptions.Approval{}, nil
	}
	if err != nil {
		return adoptions.Approval{}, err
	}

	res, err := tx.ExecContext(ctx, `UPDATE pets SET status = ? WHERE id = ?`, string(pets.StatusAdopted), petID)
	if err != nil {
		return adoptions.Approval{}, err
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return adoptions.Approval{}, fmt.Errorf("commit approve: %w", err)
	}
	return adoptions.Approval{
		Applied:    true,
		RequestID:  requestID,
		PetID:      petID,
		PetAdopted: n > 0,
	}, nil
}

func (r *AdoptionsRepo) query(ctx context.Context, query string, args ...any) ([]adoptions.Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanRequest(row rowScanner) (adoptions.Request, error) {
	var (
		req       adoptions.Request
		createdAt int64
	)
	if err := row.Scan(
		&req.ID,
		&req.PetID,
		&req.AdopterName,
		&req.Email,
		&req.IDProof,
		&createdAt,
	); err != nil {
		return adoptions.Request{}, err
	}
	req.CreatedAt = fromMillis(createdAt)
	return req, nil
}
