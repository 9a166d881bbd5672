package repository

import (
	"context"

	"safeline/internal/domain/entity"
)

type ProfileRepository interface {
	GetByPhone(ctx context.Context, phone string) (*entity.Profile, error)
	Set(ctx context.Context, profile *entity.Profile) error
	Delete(ctx context.Context, phone string) error
}
