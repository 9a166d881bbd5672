package repository

import (
	"context"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/pkg/errors"
)

type firestoreResourceRepository struct {
	client *firestore.Client
}

func NewFirestoreResourceRepository(client *firestore.Client) repository.ResourceRepository {
	return &firestoreResourceRepository{
		client: client,
	}
}

func (r *firestoreResourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	if resource.ID == "" {
		resource.ID = uuid.New().String()
	}

	_, err := r.client.Collection("Resources").Doc(resource.ID).Set(ctx, resource)
	if err != nil {
		return errors.Internal("Failed to create resource", err)
	}

	return nil
}

func (r *firestoreResourceRepository) List(ctx context.Context) ([]*entity.Resource, error) {
	iter := r.client.Collection("Resources").Documents(ctx)

	var resources []*entity.Resource
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating resources: %v", err)
			return nil, errors.Internal("Failed to iterate resources", err)
		}

		var resource entity.Resource
		if err := doc.DataTo(&resource); err != nil {
			log.Printf("Error parsing resource data: %v", err)
			continue
		}
		resource.ID = doc.Ref.ID
		resources = append(resources, &resource)
	}

	sort.Slice(resources, func(i, j int) bool {
		if resources[i].City != resources[j].City {
			return resources[i].City < resources[j].City
		}
		return resources[i].Name < resources[j].Name
	})

	return resources, nil
}

func (r *firestoreResourceRepository) Update(ctx context.Context, resource *entity.Resource) error {
	_, err := r.client.Collection("Resources").Doc(resource.ID).Set(ctx, resource)
	if err != nil {
		return errors.Internal("Failed to update resource", err)
	}

	return nil
}

func (r *firestoreResourceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("Resources").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete resource", err)
	}

	return nil
}
