package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/pkg/errors"
)

type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) GetByPhone(ctx context.Context, phone string) (*entity.Profile, error) {
	doc, err := r.client.Collection("Profile").Doc(phone).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Profile", err)
		}
		return nil, errors.Internal("Failed to get profile", err)
	}

	var profile entity.Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}
	profile.Phone = doc.Ref.ID

	return &profile, nil
}

// Set replaces the whole profile document. Profile submission is a full
// overwrite in this app, not a partial patch.
func (r *firestoreProfileRepository) Set(ctx context.Context, profile *entity.Profile) error {
	_, err := r.client.Collection("Profile").Doc(profile.Phone).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to save profile", err)
	}

	return nil
}

func (r *firestoreProfileRepository) Delete(ctx context.Context, phone string) error {
	_, err := r.client.Collection("Profile").Doc(phone).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete profile", err)
	}

	return nil
}
