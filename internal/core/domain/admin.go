package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type Admin struct {
	ID        uuid.UUID
	Username  string
	Password  string
	CreatedAt time.Time
}

type DashboardStats struct {
	TotalOrders  int64
	PaidOrders   int64
	TotalRevenue decimal.Decimal
	Subjects     int64
	Projects     int64
}
