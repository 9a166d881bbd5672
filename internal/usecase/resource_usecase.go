package usecase

import (
	"context"
	"log"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/pkg/errors"
)

type ResourceUseCase struct {
	resourceRepo repository.ResourceRepository
}

func NewResourceUseCase(resourceRepo repository.ResourceRepository) *ResourceUseCase {
	return &ResourceUseCase{
		resourceRepo: resourceRepo,
	}
}

type ResourceInput struct {
	City   string
	Type   string
	Name   string
	Number string
}

// List returns the directory sorted by city, then name.
func (uc *ResourceUseCase) List(ctx context.Context) ([]*entity.Resource, error) {
	return uc.resourceRepo.List(ctx)
}

func (uc *ResourceUseCase) Add(ctx context.Context, input ResourceInput) (*entity.Resource, error) {
	resource := &entity.Resource{
		City:   input.City,
		Type:   input.Type,
		Name:   input.Name,
		Number: input.Number,
	}
	if err := uc.resourceRepo.Create(ctx, resource); err != nil {
		log.Printf("Add Resource Error: %v", err)
		return nil, err
	}

	return resource, nil
}

func (uc *ResourceUseCase) Update(ctx context.Context, id string, input ResourceInput) (*entity.Resource, error) {
	if id == "" {
		return nil, errors.BadRequest("Resource id is required", nil)
	}

	resource := &entity.Resource{
		ID:     id,
		City:   input.City,
		Type:   input.Type,
		Name:   input.Name,
		Number: input.Number,
	}
	if err := uc.resourceRepo.Update(ctx, resource); err != nil {
		log.Printf("Update Resource Error: %v", err)
		return nil, err
	}

	return resource, nil
}

func (uc *ResourceUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.BadRequest("Resource id is required", nil)
	}

	return uc.resourceRepo.Delete(ctx, id)
}
