package usecase

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/internal/infrastructure/token"
	"safeline/pkg/errors"
)

const bcryptCost = 10

type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tokens      *token.Manager
}

func NewAuthUseCase(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, tokens *token.Manager) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
	}
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, phone, password string) (*AuthResult, error) {
	existing, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("Phone number already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		log.Printf("Register Error: Failed to create user %s: %v", phone, err)
		return nil, err
	}

	signed, err := uc.tokens.Generate(phone)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: signed}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, phone, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid phone number or password", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid phone number or password", nil)
	}

	signed, err := uc.tokens.Generate(phone)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: signed}, nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, phone, oldPassword, newPassword string) error {
	user, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return errors.Unauthorized("Current password is incorrect", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	return uc.userRepo.Update(ctx, user)
}

// DeleteAccount removes the user record and their profile. Conversations and
// contacts are left in place, matching the app's account-removal behavior.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, phone string) error {
	if err := uc.userRepo.Delete(ctx, phone); err != nil {
		log.Printf("DeleteAccount Error: Failed to delete user %s: %v", phone, err)
		return err
	}

	if err := uc.profileRepo.Delete(ctx, phone); err != nil {
		log.Printf("DeleteAccount: Failed to delete profile for %s: %v", phone, err)
	}

	return nil
}
