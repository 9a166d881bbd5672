package usecase

import (
	"context"
	"log"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/pkg/errors"
)

type ContactUseCase struct {
	contactRepo      repository.ContactRepository
	conversationRepo repository.ConversationRepository
}

func NewContactUseCase(contactRepo repository.ContactRepository, conversationRepo repository.ConversationRepository) *ContactUseCase {
	return &ContactUseCase{
		contactRepo:      contactRepo,
		conversationRepo: conversationRepo,
	}
}

type ContactInput struct {
	Name  string
	Phone string
}

func (uc *ContactUseCase) List(ctx context.Context, owner string) ([]*entity.EmergencyContact, error) {
	return uc.contactRepo.ListByOwner(ctx, owner)
}

func (uc *ContactUseCase) Add(ctx context.Context, owner string, input ContactInput) (*entity.EmergencyContact, error) {
	if input.Phone == owner {
		return nil, errors.BadRequest("You cannot add yourself as an emergency contact", nil)
	}

	contact := &entity.EmergencyContact{
		Name:      input.Name,
		Phone:     input.Phone,
		UserPhone: owner,
	}
	if err := uc.contactRepo.Create(ctx, contact); err != nil {
		log.Printf("Add Contact Error: Failed to create contact for %s: %v", owner, err)
		return nil, err
	}

	return contact, nil
}

// Update edits a contact. When the contact's phone number changes, any
// conversation between the owner and the old number is moved under the ID
// derived from the new number so the conversation key stays the sorted join
// of its participants.
func (uc *ContactUseCase) Update(ctx context.Context, owner, id string, input ContactInput) (*entity.EmergencyContact, error) {
	contact, err := uc.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact.UserPhone != owner {
		return nil, errors.Forbidden("Contact belongs to another user", nil)
	}
	if input.Phone == owner {
		return nil, errors.BadRequest("You cannot add yourself as an emergency contact", nil)
	}

	oldPhone := contact.Phone
	contact.Name = input.Name
	contact.Phone = input.Phone

	if oldPhone != input.Phone {
		oldID := entity.ConversationIDFor(owner, oldPhone)
		newID := entity.ConversationIDFor(owner, input.Phone)
		if err := uc.conversationRepo.Rekey(ctx, oldID, newID); err != nil {
			if !errors.Is(err, "NOT_FOUND") {
				log.Printf("Update Contact Error: Failed to rekey conversation %s: %v", oldID, err)
				return nil, err
			}
			// No conversation with the old number yet; nothing to move.
		}
	}

	if err := uc.contactRepo.Update(ctx, contact); err != nil {
		log.Printf("Update Contact Error: Failed to update contact %s: %v", id, err)
		return nil, err
	}

	return contact, nil
}

func (uc *ContactUseCase) Delete(ctx context.Context, owner, id string) error {
	contact, err := uc.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact.UserPhone != owner {
		return errors.Forbidden("Contact belongs to another user", nil)
	}

	return uc.contactRepo.Delete(ctx, id)
}
