package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/users-service/internal/domain"
)

// OperatorRepository persists call-centre admins and operators. Each type lives in its own table.
type OperatorRepository interface {
	Create(ctx context.Context, operator *domain.Operator) error
	Update(ctx context.Context, operator *domain.Operator) error
	Delete(ctx context.Context, opType domain.OperatorType, id int64) error
	GetByID(ctx context.Context, opType domain.OperatorType, id int64) (*domain.Operator, error)
	List(ctx context.Context, opType domain.OperatorType) ([]domain.Operator, error)
}

type operatorRepository struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository constructs repository.
func NewOperatorRepository(pool *pgxpool.Pool) OperatorRepository {
	return &operatorRepository{pool: pool}
}

func operatorTable(opType domain.OperatorType) (string, error) {
	switch opType {
	case domain.OperatorTypeAdmin:
		return "callcentre_admins", nil
	case domain.OperatorTypeOperator:
		return "callcentre_operators", nil
	default:
		return "", fmt.Errorf("unknown operator type %q", opType)
	}
}

func (r *operatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	table, err := operatorTable(operator.Type)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO ` + table + ` (name, login, password_hash, city, sip_address, status_work, note)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, date_create`

	return r.pool.QueryRow(ctx, query,
		operator.Name,
		operator.Login,
		operator.PasswordHash,
		operator.City,
		operator.SipAddress,
		operator.StatusWork,
		operator.Note,
	).Scan(&operator.ID, &operator.DateCreate)
}

func (r *operatorRepository) Update(ctx context.Context, operator *domain.Operator) error {
	table, err := operatorTable(operator.Type)
	if err != nil {
		return err
	}
	query := `
        UPDATE ` + table + `
        SET name=$1, login=$2, password_hash=$3, city=$4, sip_address=$5, status_work=$6, note=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		operator.Name,
		operator.Login,
		operator.PasswordHash,
		operator.City,
		operator.SipAddress,
		operator.StatusWork,
		operator.Note,
		operator.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *operatorRepository) Delete(ctx context.Context, opType domain.OperatorType, id int64) error {
	table, err := operatorTable(opType)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *operatorRepository) GetByID(ctx context.Context, opType domain.OperatorType, id int64) (*domain.Operator, error) {
	table, err := operatorTable(opType)
	if err != nil {
		return nil, err
	}
	query := `
        SELECT id, name, login, password_hash, city, sip_address, status_work, note, date_create
        FROM ` + table + ` WHERE id=$1`

	return scanOperator(r.pool.QueryRow(ctx, query, id), opType)
}

func (r *operatorRepository) List(ctx context.Context, opType domain.OperatorType) ([]domain.Operator, error) {
	table, err := operatorTable(opType)
	if err != nil {
		return nil, err
	}
	query := `
        SELECT id, name, login, password_hash, city, sip_address, status_work, note, date_create
        FROM ` + table + ` ORDER BY date_create DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Operator{}
	for rows.Next() {
		operator, err := scanOperator(rows, opType)
		if err != nil {
			return nil, err
		}
		result = append(result, *operator)
	}
	return result, rows.Err()
}

func scanOperator(row pgx.Row, opType domain.OperatorType) (*domain.Operator, error) {
	operator := domain.Operator{Type: opType}
	if err := row.Scan(
		&operator.ID,
		&operator.Name,
		&operator.Login,
		&operator.PasswordHash,
		&operator.City,
		&operator.SipAddress,
		&operator.StatusWork,
		&operator.Note,
		&operator.DateCreate,
	); err != nil {
		return nil, err
	}
	return &operator, nil
}
