package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"
	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/pkg/embedding"
	"shopping-assistant-be/pkg/events"
	pktNats "shopping-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService turns catalog products into retrieval vectors. Each message
// carries one product id; the worker regenerates both the text-side and
// image-side embedding so the two always stay in sync.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
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
	var payload dto.PublishEmbedProductMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for ProductId: %s", payload.ProductId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: payload.ProductId})
	if err != nil {
		log.Printf("[ERROR] Failed to get product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}
	if product == nil {
		log.Printf("[ERROR] Product not found: %s", payload.ProductId)
		msg.Ack() // Product deleted? Ack.
		return
	}

	document := BuildProductDocument(product)

	contextRes, err := cs.embeddingProvider.Generate(ctx, document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate context embedding for product %s: %v", payload.ProductId, err)
		msg.Nack()
		return
	}

	// The image-side vector is best effort: a product without an image (or a
	// text-only provider) still gets indexed for text retrieval.
	var contentValues []float32
	hasImageVector := false
	if product.ImagePath != "" {
		contentRes, err := cs.embeddingProvider.GenerateImage(ctx, product.ImagePath)
		switch {
		case errors.Is(err, embedding.ErrImageNotSupported):
			log.Printf("[WARN] Embedding provider has no image support, indexing product %s text-only", payload.ProductId)
		case err != nil:
			log.Printf("[ERROR] Failed to generate content embedding for product %s: %v", payload.ProductId, err)
			msg.Nack()
			return
		default:
			contentValues = contentRes.Embedding.Values
			hasImageVector = true
		}
	}

	newEmbedding := &entity.ProductEmbedding{
		Id:            uuid.New(),
		ProductId:     product.Id,
		Document:      document,
		ContentValues: contentValues,
		ContextValues: contextRes.Embedding.Values,
		CreatedAt:     time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ProductEmbeddingRepository().DeleteByProductId(ctx, product.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.ProductEmbeddingRepository().Create(ctx, newEmbedding); err != nil {
		log.Printf("[ERROR] Failed to create embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewProductIndexed(product.Id.String(), hasImageVector)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish index event for product %s: %v", product.Id, err)
		}
	}

	log.Printf("[SUCCESS] Product indexed: %s (image vector: %v)", payload.ProductId, hasImageVector)
	msg.Ack()
}

// BuildProductDocument serializes the catalog attributes into the text that
// backs the context embedding. Keys mirror the extraction vocabulary so query
// and document land close in vector space.
func BuildProductDocument(p *entity.Product) string {
	pairs := []struct {
		key   string
		value string
	}{
		{"product_type", p.ProductType},
		{"brand", p.Brand},
		{"color", p.Color},
		{"material", p.Material},
		{"gender", p.Gender},
		{"size", p.Size},
		{"pattern", p.Pattern},
		{"theme", p.Theme},
		{"fit", p.Fit},
		{"sleeve_type", p.SleeveType},
		{"neck_type", p.NeckType},
		{"category", p.Category},
		{"subcategory", p.Subcategory},
	}

	parts := make([]string, 0, len(pairs)+2)
	for _, pair := range pairs {
		if strings.TrimSpace(pair.value) == "" {
			continue
		}
		parts = append(parts, pair.key+": "+pair.value)
	}
	if p.PriceINR > 0 {
		parts = append(parts, fmt.Sprintf("price_inr: %.0f", p.PriceINR))
	}
	if strings.TrimSpace(p.Description) != "" {
		parts = append(parts, p.Description)
	}
	return strings.Join(parts, ". ")
}
