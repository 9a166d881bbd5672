package repository

import (
	"context"

	"safeline/internal/domain/entity"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	List(ctx context.Context) ([]*entity.Resource, error)
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id string) error
}
