package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type Subject struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Icon         string
	ProjectCount int
	CreatedAt    time.Time
}

type Project struct {
	ID          uuid.UUID
	SubjectID   uuid.UUID
	SubjectName string
	Title       string
	Description string
	Price       decimal.Decimal
	FileName    string
	CreatedAt   time.Time
}
