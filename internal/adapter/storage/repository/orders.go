package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/parulcreation/projectshop/internal/adapter/storage"
	"github.com/parulcreation/projectshop/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"id", "reference", "customer_name", "customer_email", "customer_phone",
	"project_id", "project_title", "subject_name", "amount",
	"status", "fulfillment_state", "gateway_order_ref", "gateway_payment_ref",
	"created_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.Reference,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ProjectID,
		&order.ProjectTitle,
		&order.SubjectName,
		&order.Amount,
		&order.Status,
		&order.Fulfillment,
		&order.GatewayOrderRef,
		&order.GatewayPaymentRef,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Insert("orders").
		Columns(orderColumns...).
		Values(order.ID, order.Reference, order.CustomerName, order.CustomerEmail,
			order.CustomerPhone, order.ProjectID, order.ProjectTitle, order.SubjectName,
			order.Amount, order.Status, order.Fulfillment, order.GatewayOrderRef,
			order.GatewayPaymentRef, order.CreatedAt)

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
	return order, nil
}

func (r *Repository) OrderByReference(ctx context.Context, reference string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"reference": reference})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanOrder(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) OrderByGatewayRef(ctx context.Context, gatewayOrderRef string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"gateway_order_ref": gatewayOrderRef})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanOrder(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ListOrders(ctx context.Context, limit uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(limit)

	return r.listOrders(ctx, statement)
}

func (r *Repository) ListUnfulfilledOrders(ctx context.Context) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"status": domain.OrderStatusPaid}).
		Where(sq.Eq{"fulfillment_state": []domain.FulfillmentState{
			domain.FulfillmentNotSent, domain.FulfillmentFailed}})

	return r.listOrders(ctx, statement)
}

func (r *Repository) listOrders(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// UpdateOrderStatusIfPending is the compare-and-set at the heart of payment
// reconciliation: the webhook and polling paths may race on the same order,
// and only the one whose UPDATE matches the PENDING row observes a change.
func (r *Repository) UpdateOrderStatusIfPending(ctx context.Context, reference string,
	status domain.OrderStatus, gatewayPaymentRef string) (bool, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("status", status).
		Where(sq.Eq{"reference": reference, "status": domain.OrderStatusPending})

	if gatewayPaymentRef != "" {
		statement = statement.Set("gateway_payment_ref", gatewayPaymentRef)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// UpdateFulfillmentState is monotonic toward SENT: a SENT row is never
// rewritten, so replayed dispatches cannot double-deliver.
func (r *Repository) UpdateFulfillmentState(ctx context.Context, reference string,
	state domain.FulfillmentState) (bool, error) {
	statement := r.db.QueryBuilder.Update("orders").
		Set("fulfillment_state", state).
		Where(sq.Eq{"reference": reference}).
		Where(sq.NotEq{"fulfillment_state": domain.FulfillmentSent})

	sql, args, err := statement.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
