package repository

import (
	"context"

	"safeline/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *entity.EmergencyContact) error
	GetByID(ctx context.Context, id string) (*entity.EmergencyContact, error)
	ListByOwner(ctx context.Context, userPhone string) ([]*entity.EmergencyContact, error)
	Update(ctx context.Context, contact *entity.EmergencyContact) error
	Delete(ctx context.Context, id string) error
}
