package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/govalues/decimal"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/parulcreation/projectshop/internal/core/domain"
)

func (r *Repository) CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	statement := r.db.QueryBuilder.Insert("admins").
		Columns("id", "username", "password", "created_at").
		Values(admin.ID, admin.Username, admin.Password, admin.CreatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return admin, nil
}

func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	statement := r.db.QueryBuilder.
		Select("id", "username", "password", "created_at").
		From("admins").
		Where(sq.Eq{"username": username})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	admin := domain.Admin{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&admin.ID,
		&admin.Username,
		&admin.Password,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &admin, nil
}

func (r *Repository) CountAdmins(ctx context.Context) (int64, error) {
	statement := r.db.QueryBuilder.Select("count(*)").From("admins")

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := domain.DashboardStats{TotalRevenue: decimal.Zero}

	sql := `SELECT count(*),
       count(*) FILTER (WHERE status = 'PAID'),
       coalesce(sum(amount) FILTER (WHERE status = 'PAID'), 0)
  FROM orders`
	err := r.db.QueryRow(ctx, sql).Scan(&stats.TotalOrders, &stats.PaidOrders, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `SELECT count(*) FROM subjects`).Scan(&stats.Subjects)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM projects`).Scan(&stats.Projects)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
