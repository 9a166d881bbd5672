package usecase

import (
	"context"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
	}
}

func (uc *ProfileUseCase) Get(ctx context.Context, phone string) (*entity.Profile, error) {
	return uc.profileRepo.GetByPhone(ctx, phone)
}

// Save overwrites the whole profile document for the given phone.
func (uc *ProfileUseCase) Save(ctx context.Context, phone string, profile *entity.Profile) error {
	profile.Phone = phone
	return uc.profileRepo.Set(ctx, profile)
}
