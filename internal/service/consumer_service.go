package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"volunteer-matching-be/internal/dto"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/internal/repository/specification"
	"volunteer-matching-be/internal/repository/unitofwork"
	"volunteer-matching-be/pkg/advisor/contextbuild"
	"volunteer-matching-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedEventMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing event embedding for EventId: %s", payload.EventId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	event, err := uow.EventRepository().FindOne(ctx,
		specification.ByID{ID: payload.EventId},
		specification.WithTags{},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to get event %s: %v", payload.EventId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if event == nil {
		// Event deleted before the message got processed. Drop stale vectors.
		log.Printf("[INFO] Event %s no longer exists, removing its embeddings", payload.EventId)
		if err := uow.EventEmbeddingRepository().DeleteByEventId(ctx, payload.EventId); err != nil {
			log.Printf("[ERROR] Failed to delete embeddings for removed event %s: %v", payload.EventId, err)
			msg.Nack()
			return
		}
		msg.Ack()
		return
	}

	// The indexed document is the same rendering the advisor grounds answers
	// on, so a stored projection can stand in for the record later.
	document := contextbuild.RenderEvent(event)

	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for event %s: %v", payload.EventId, err)
		msg.Nack()
		return
	}

	newEmbeddings := []*entity.EventEmbedding{
		{
			Id:             uuid.New(),
			Document:       document,
			EmbeddingValue: res.Embedding.Values,
			EventId:        event.Id,
			CreatedAt:      time.Now(),
		},
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.EventEmbeddingRepository().DeleteByEventId(ctx, event.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.EventEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to store embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Event indexed: %s", payload.EventId)
	msg.Ack()
}
