package port

import (
	"github.com/google/uuid"
	"github.com/parulcreation/projectshop/internal/core/domain"
)

type TokenPayload struct {
	AdminID  uuid.UUID
	Username string
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(admin *domain.Admin) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
