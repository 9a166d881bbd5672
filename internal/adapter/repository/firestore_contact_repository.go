package repository

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/pkg/errors"
)

type firestoreContactRepository struct {
	client *firestore.Client
}

func NewFirestoreContactRepository(client *firestore.Client) repository.ContactRepository {
	return &firestoreContactRepository{
		client: client,
	}
}

func (r *firestoreContactRepository) Create(ctx context.Context, contact *entity.EmergencyContact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	_, err := r.client.Collection("emergencyContacts").Doc(contact.ID).Set(ctx, contact)
	if err != nil {
		return errors.Internal("Failed to create emergency contact", err)
	}

	return nil
}

func (r *firestoreContactRepository) GetByID(ctx context.Context, id string) (*entity.EmergencyContact, error) {
	doc, err := r.client.Collection("emergencyContacts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Emergency contact", err)
		}
		return nil, errors.Internal("Failed to get emergency contact", err)
	}

	var contact entity.EmergencyContact
	if err := doc.DataTo(&contact); err != nil {
		return nil, errors.Internal("Failed to parse emergency contact data", err)
	}
	contact.ID = doc.Ref.ID

	return &contact, nil
}

func (r *firestoreContactRepository) ListByOwner(ctx context.Context, userPhone string) ([]*entity.EmergencyContact, error) {
	query := r.client.Collection("emergencyContacts").Where("userPhone", "==", userPhone)
	iter := query.Documents(ctx)

	var contacts []*entity.EmergencyContact
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating contacts for %s: %v", userPhone, err)
			return nil, errors.Internal("Failed to iterate emergency contacts", err)
		}

		var contact entity.EmergencyContact
		if err := doc.DataTo(&contact); err != nil {
			log.Printf("Error parsing contact data for %s: %v", userPhone, err)
			continue
		}
		contact.ID = doc.Ref.ID
		contacts = append(contacts, &contact)
	}

	return contacts, nil
}

func (r *firestoreContactRepository) Update(ctx context.Context, contact *entity.EmergencyContact) error {
	_, err := r.client.Collection("emergencyContacts").Doc(contact.ID).Set(ctx, contact)
	if err != nil {
		return errors.Internal("Failed to update emergency contact", err)
	}

	return nil
}

func (r *firestoreContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("emergencyContacts").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete emergency contact", err)
	}

	return nil
}
