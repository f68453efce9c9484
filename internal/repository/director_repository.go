package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/users-service/internal/domain"
)

// DirectorRepository handles persistence for directors.
type DirectorRepository interface {
	Create(ctx context.Context, director *domain.Director) error
	Update(ctx context.Context, director *domain.Director) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Director, error)
	List(ctx context.Context, filter DirectorFilter) ([]domain.Director, error)
}

// DirectorFilter narrows director listings. IDs restricts the result to the given ids.
type DirectorFilter struct {
	IDs    []int64
	Search *string
	Limit  int
	Offset int
}

const directorColumns = `id, name, login, password_hash, cities, tg_id, note, contract_doc, passport_doc, date_create`

type directorRepository struct {
	pool *pgxpool.Pool
}

// NewDirectorRepository instantiates the repository.
func NewDirectorRepository(pool *pgxpool.Pool) DirectorRepository {
	return &directorRepository{pool: pool}
}

func (r *directorRepository) Create(ctx context.Context, director *domain.Director) error {
	const query = `
        INSERT INTO directors (name, login, password_hash, cities, tg_id, note, contract_doc, passport_doc)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, date_create`

	return r.pool.QueryRow(ctx, query,
		director.Name,
		director.Login,
		director.PasswordHash,
		nonNilCities(director.Cities),
		director.TgID,
		director.Note,
		director.ContractDoc,
		director.PassportDoc,
	).Scan(&director.ID, &director.DateCreate)
}

func (r *directorRepository) Update(ctx context.Context, director *domain.Director) error {
	const query = `
        UPDATE directors
        SET name=$1, login=$2, password_hash=$3, cities=$4, tg_id=$5, note=$6, contract_doc=$7, passport_doc=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		director.Name,
		director.Login,
		director.PasswordHash,
		nonNilCities(director.Cities),
		director.TgID,
		director.Note,
		director.ContractDoc,
		director.PassportDoc,
		director.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *directorRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM directors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *directorRepository) GetByID(ctx context.Context, id int64) (*domain.Director, error) {
	query := `SELECT ` + directorColumns + ` FROM directors WHERE id=$1`
	return scanDirector(r.pool.QueryRow(ctx, query, id))
}

func (r *directorRepository) List(ctx context.Context, filter DirectorFilter) ([]domain.Director, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []domain.Director{}, nil
	}

	query := `SELECT ` + directorColumns + ` FROM directors`
	args := []any{}
	clauses := []string{}

	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		clauses = append(clauses, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR login ILIKE $%d)", n, n))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date_create DESC" + pageClause(filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Director{}
	for rows.Next() {
		director, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *director)
	}
	return result, rows.Err()
}

func scanDirector(row pgx.Row) (*domain.Director, error) {
	var director domain.Director
	if err := row.Scan(
		&director.ID,
		&director.Name,
		&director.Login,
		&director.PasswordHash,
		&director.Cities,
		&director.TgID,
		&director.Note,
		&director.ContractDoc,
		&director.PassportDoc,
		&director.DateCreate,
	); err != nil {
		return nil, err
	}
	return &director, nil
}
