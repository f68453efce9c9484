package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/users-service/internal/domain"
)

// PrincipalRepository answers identity questions across every personnel table.
type PrincipalRepository interface {
	ExistsByRoleAndID(ctx context.Context, role domain.Role, id int64) (bool, error)
	GetProfile(ctx context.Context, role domain.Role, id int64) (*domain.Profile, error)
}

type principalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository returns a Postgres-backed implementation.
func NewPrincipalRepository(pool *pgxpool.Pool) PrincipalRepository {
	return &principalRepository{pool: pool}
}

// principalTable maps a role onto the table holding its records. Roles without a
// table (admin) report ok=false.
func principalTable(role domain.Role) (string, bool) {
	switch role {
	case domain.RoleMaster:
		return "masters", true
	case domain.RoleDirector:
		return "directors", true
	case domain.RoleCallcentreAdmin:
		return "callcentre_admins", true
	case domain.RoleCallcentreOperator:
		return "callcentre_operators", true
	default:
		return "", false
	}
}

func (r *principalRepository) ExistsByRoleAndID(ctx context.Context, role domain.Role, id int64) (bool, error) {
	table, ok := principalTable(role)
	if !ok {
		return false, nil
	}
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id=$1)`
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s existence: %w", role, err)
	}
	return exists, nil
}

func (r *principalRepository) GetProfile(ctx context.Context, role domain.Role, id int64) (*domain.Profile, error) {
	profile := domain.Profile{Role: role}

	switch role {
	case domain.RoleMaster:
		const query = `
            SELECT id, name, COALESCE(login, ''), cities, status_work, note, tg_id, chat_id, date_create
            FROM masters WHERE id=$1`
		var status string
		if err := r.pool.QueryRow(ctx, query, id).Scan(
			&profile.ID,
			&profile.Name,
			&profile.Login,
			&profile.Cities,
			&status,
			&profile.Note,
			&profile.TgID,
			&profile.ChatID,
			&profile.DateCreate,
		); err != nil {
			return nil, err
		}
		profile.StatusWork = &status
	case domain.RoleDirector:
		const query = `
            SELECT id, name, login, cities, note, tg_id, date_create
            FROM directors WHERE id=$1`
		if err := r.pool.QueryRow(ctx, query, id).Scan(
			&profile.ID,
			&profile.Name,
			&profile.Login,
			&profile.Cities,
			&profile.Note,
			&profile.TgID,
			&profile.DateCreate,
		); err != nil {
			return nil, err
		}
	case domain.RoleCallcentreAdmin, domain.RoleCallcentreOperator:
		table, _ := principalTable(role)
		query := `
            SELECT id, name, login, city, sip_address, status_work, note, date_create
            FROM ` + table + ` WHERE id=$1`
		var status string
		if err := r.pool.QueryRow(ctx, query, id).Scan(
			&profile.ID,
			&profile.Name,
			&profile.Login,
			&profile.City,
			&profile.SipAddress,
			&status,
			&profile.Note,
			&profile.DateCreate,
		); err != nil {
			return nil, err
		}
		profile.StatusWork = &status
	default:
		return nil, ErrNoProfile
	}
	return &profile, nil
}
