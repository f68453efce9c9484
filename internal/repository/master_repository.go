package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/users-service/internal/domain"
)

// MasterRepository defines persistence access for masters.
type MasterRepository interface {
	Create(ctx context.Context, master *domain.Master) error
	Update(ctx context.Context, master *domain.Master) error
	UpdateDocuments(ctx context.Context, id int64, contractDoc, passportDoc *string) (*domain.Master, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
	List(ctx context.Context, filter MasterFilter) ([]domain.Master, error)
}

// MasterFilter narrows master listings.
// Cities == nil means no city filter; a non-nil empty slice matches nothing.
type MasterFilter struct {
	Cities     []string
	StatusWork *string
	Search     *string
	Limit      int
	Offset     int
}

const masterColumns = `id, name, login, password_hash, phone, cities, status_work, note,
        contract_doc, passport_doc, tg_id, chat_id, date_create`

type masterRepository struct {
	pool *pgxpool.Pool
}

// NewMasterRepository returns a Postgres-backed implementation.
func NewMasterRepository(pool *pgxpool.Pool) MasterRepository {
	return &masterRepository{pool: pool}
}

func (r *masterRepository) Create(ctx context.Context, master *domain.Master) error {
	const query = `
        INSERT INTO masters (name, login, password_hash, phone, cities, status_work, note, contract_doc, passport_doc, tg_id, chat_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, date_create`

	return r.pool.QueryRow(ctx, query,
		master.Name,
		master.Login,
		master.PasswordHash,
		master.Phone,
		nonNilCities(master.Cities),
		master.StatusWork,
		master.Note,
		master.ContractDoc,
		master.PassportDoc,
		master.TgID,
		master.ChatID,
	).Scan(&master.ID, &master.DateCreate)
}

func (r *masterRepository) Update(ctx context.Context, master *domain.Master) error {
	const query = `
        UPDATE masters
        SET name=$1, login=$2, password_hash=$3, phone=$4, cities=$5, status_work=$6, note=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		master.Name,
		master.Login,
		master.PasswordHash,
		master.Phone,
		nonNilCities(master.Cities),
		master.StatusWork,
		master.Note,
		master.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *masterRepository) UpdateDocuments(ctx context.Context, id int64, contractDoc, passportDoc *string) (*domain.Master, error) {
	query := `
        UPDATE masters
        SET contract_doc=COALESCE($1, contract_doc), passport_doc=COALESCE($2, passport_doc)
        WHERE id=$3
        RETURNING ` + masterColumns

	return scanMaster(r.pool.QueryRow(ctx, query, contractDoc, passportDoc, id))
}

func (r *masterRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM masters WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *masterRepository) GetByID(ctx context.Context, id int64) (*domain.Master, error) {
	query := `SELECT ` + masterColumns + ` FROM masters WHERE id=$1`
	return scanMaster(r.pool.QueryRow(ctx, query, id))
}

func (r *masterRepository) List(ctx context.Context, filter MasterFilter) ([]domain.Master, error) {
	if filter.Cities != nil && len(filter.Cities) == 0 {
		return []domain.Master{}, nil
	}

	query, args := buildMasterListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Master{}
	for rows.Next() {
		master, err := scanMaster(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *master)
	}
	return result, rows.Err()
}

func buildMasterListQuery(filter MasterFilter) (string, []any) {
	query := `SELECT ` + masterColumns + ` FROM masters`
	args := []any{}
	clauses := []string{}

	if len(filter.Cities) > 0 {
		args = append(args, filter.Cities)
		clauses = append(clauses, fmt.Sprintf("cities && $%d", len(args)))
	}
	if filter.StatusWork != nil {
		args = append(args, *filter.StatusWork)
		clauses = append(clauses, fmt.Sprintf("status_work=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR login ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY date_create DESC"
	query += pageClause(filter.Limit, filter.Offset)
	return query, args
}

func scanMaster(row pgx.Row) (*domain.Master, error) {
	var master domain.Master
	if err := row.Scan(
		&master.ID,
		&master.Name,
		&master.Login,
		&master.PasswordHash,
		&master.Phone,
		&master.Cities,
		&master.StatusWork,
		&master.Note,
		&master.ContractDoc,
		&master.PassportDoc,
		&master.TgID,
		&master.ChatID,
		&master.DateCreate,
	); err != nil {
		return nil, err
	}
	return &master, nil
}
