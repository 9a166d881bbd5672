package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"safeline/internal/domain/entity"
	"safeline/internal/domain/repository"
	"safeline/pkg/errors"
	"safeline/pkg/logger"
)

type firestoreConversationRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreConversationRepository persists regular user-to-user threads.
func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client:     client,
		collection: "conversations",
	}
}

// NewFirestoreSupportRepository persists support-channel threads. Same
// document shape, separate top-level collection.
func NewFirestoreSupportRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client:     client,
		collection: "Support",
	}
}

func (r *firestoreConversationRepository) Upsert(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.LastMessageDate.IsZero() {
		conversation.LastMessageDate = time.Now()
	}

	// Participants are always rewritten from the ID so the denormalized
	// array can never drift from what the key encodes.
	data := map[string]interface{}{
		"participants":    entity.ParticipantsOf(conversation.ID),
		"lastMessage":     conversation.LastMessage,
		"lastMessageDate": conversation.LastMessageDate,
	}

	_, err := r.client.Collection(r.collection).Doc(conversation.ID).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to upsert conversation", err)
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	conversation.ID = doc.Ref.ID

	return &conversation, nil
}

func (r *firestoreConversationRepository) ListByParticipant(ctx context.Context, phone string) ([]*entity.Conversation, error) {
	query := r.client.Collection(r.collection).Where("participants", "array-contains", phone)
	iter := query.Documents(ctx)

	var conversations []*entity.Conversation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating conversations for %s: %v", phone, err)
			return nil, errors.Internal("Failed to iterate conversations", err)
		}

		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			logger.Error("Error parsing conversation data for %s: %v", phone, err)
			continue
		}
		conversation.ID = doc.Ref.ID
		conversations = append(conversations, &conversation)
	}

	return conversations, nil
}

func (r *firestoreConversationRepository) AppendMessage(ctx context.Context, conversationID string, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.messages(conversationID).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.messages(conversationID).OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while counting messages for conversation %s: %v", conversationID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating messages for conversation %s: %v", conversationID, err)
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Error("Error parsing message data for conversation %s: %v", conversationID, err)
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreConversationRepository) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	_, err := r.messages(conversationID).Doc(messageID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete message", err)
	}

	return nil
}

func (r *firestoreConversationRepository) DeleteWithMessages(ctx context.Context, conversationID string) error {
	docs, err := r.messages(conversationID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list messages for deletion", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			return errors.Internal("Failed to queue message deletion", err)
		}
	}
	if _, err := bw.Delete(r.client.Collection(r.collection).Doc(conversationID)); err != nil {
		return errors.Internal("Failed to queue conversation deletion", err)
	}
	bw.End()

	return nil
}

func (r *firestoreConversationRepository) Rekey(ctx context.Context, oldID, newID string) error {
	oldRef := r.client.Collection(r.collection).Doc(oldID)
	oldDoc, err := oldRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to get conversation for rekey", err)
	}

	var conversation entity.Conversation
	if err := oldDoc.DataTo(&conversation); err != nil {
		return errors.Internal("Failed to parse conversation data", err)
	}

	messageDocs, err := r.messages(oldID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to list messages for rekey", err)
	}

	newData := map[string]interface{}{
		"participants":    entity.ParticipantsOf(newID),
		"lastMessage":     conversation.LastMessage,
		"lastMessageDate": conversation.LastMessageDate,
	}

	bw := r.client.BulkWriter(ctx)
	if _, err := bw.Set(r.client.Collection(r.collection).Doc(newID), newData); err != nil {
		return errors.Internal("Failed to queue conversation rekey", err)
	}
	for _, doc := range messageDocs {
		if _, err := bw.Set(r.messages(newID).Doc(doc.Ref.ID), doc.Data()); err != nil {
			return errors.Internal("Failed to queue message copy", err)
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return errors.Internal("Failed to queue message deletion", err)
		}
	}
	if _, err := bw.Delete(oldRef); err != nil {
		return errors.Internal("Failed to queue conversation deletion", err)
	}
	bw.End()

	logger.Info("Rekeyed conversation %s to %s (%d messages)", oldID, newID, len(messageDocs))
	return nil
}

func (r *firestoreConversationRepository) ListenMessages(ctx context.Context, conversationID string) (<-chan []*entity.Message, error) {
	query := r.messages(conversationID).OrderBy("createdAt", firestore.Desc)

	out := make(chan []*entity.Message)
	go func() {
		defer close(out)

		snapshots := query.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Snapshot listener error for conversation %s: %v", conversationID, err)
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("Failed to read snapshot for conversation %s: %v", conversationID, err)
				continue
			}

			messages := make([]*entity.Message, 0, len(docs))
			for _, doc := range docs {
				var message entity.Message
				if err := doc.DataTo(&message); err != nil {
					continue
				}
				messages = append(messages, &message)
			}

			select {
			case out <- messages:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (r *firestoreConversationRepository) ListenByParticipant(ctx context.Context, phone string) (<-chan []*entity.Conversation, error) {
	query := r.client.Collection(r.collection).Where("participants", "array-contains", phone)

	out := make(chan []*entity.Conversation)
	go func() {
		defer close(out)

		snapshots := query.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Snapshot listener error for participant %s: %v", phone, err)
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("Failed to read snapshot for participant %s: %v", phone, err)
				continue
			}

			conversations := make([]*entity.Conversation, 0, len(docs))
			for _, doc := range docs {
				var conversation entity.Conversation
				if err := doc.DataTo(&conversation); err != nil {
					continue
				}
				conversation.ID = doc.Ref.ID
				conversations = append(conversations, &conversation)
			}

			select {
			case out <- conversations:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (r *firestoreConversationRepository) messages(conversationID string) *firestore.CollectionRef {
	return r.client.Collection(r.collection).Doc(conversationID).Collection("messages")
}
