package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"
	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/pkg/search"

	"github.com/google/uuid"
)

type IProductService interface {
	Create(ctx context.Context, request *dto.CreateProductRequest) (*dto.CreateProductResponse, error)
	CreateBulk(ctx context.Context, requests []*dto.CreateProductRequest) (int, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, category string, page, pageSize int) ([]*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reindex(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string) ([]*dto.SearchResultResponse, error)
}

type productService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	retriever        *search.Retriever
}

func NewProductService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	retriever *search.Retriever,
) IProductService {
	return &productService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		retriever:        retriever,
	}
}

func (ps *productService) Create(ctx context.Context, request *dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	product := requestToEntity(request)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := ps.publishEmbed(ctx, product.Id); err != nil {
		return nil, err
	}

	return &dto.CreateProductResponse{Id: product.Id}, nil
}

// CreateBulk inserts a catalog batch and queues each product for embedding.
// Used by the seeder; the whole batch commits in one transaction.
func (ps *productService) CreateBulk(ctx context.Context, requests []*dto.CreateProductRequest) (int, error) {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	products := make([]*entity.Product, 0, len(requests))
	for _, req := range requests {
		products = append(products, requestToEntity(req))
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().CreateBulk(ctx, products); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	for _, p := range products {
		if err := ps.publishEmbed(ctx, p.Id); err != nil {
			return 0, err
		}
	}

	return len(products), nil
}

func (ps *productService) Show(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	return entityToResponse(product), nil
}

func (ps *productService) List(ctx context.Context, category string, page, pageSize int) ([]*dto.ProductResponse, error) {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	products, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, entityToResponse(p))
	}
	return response, nil
}

func (ps *productService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.ProductEmbeddingRepository().DeleteByProductId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

// Reindex requeues a product for embedding generation.
func (ps *productService) Reindex(ctx context.Context, id uuid.UUID) error {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product not found")
	}

	return ps.publishEmbed(ctx, id)
}

// Search runs a raw-text hybrid query, bypassing the dialogue engine.
// Debug surface for catalog verification.
func (ps *productService) Search(ctx context.Context, query string) ([]*dto.SearchResultResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	candidates, err := ps.retriever.Search(ctx, nil, query, "")
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchResultResponse, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, &dto.SearchResultResponse{
			ProductId:   c.ProductID,
			ImageId:     c.Metadata.ImageID,
			ProductType: c.Metadata.ProductType,
			Brand:       c.Metadata.Brand,
			Color:       c.Metadata.Color,
			PriceINR:    c.Metadata.PriceINR,
			TextScore:   c.TextScore,
			ImageScore:  c.ImageScore,
			FusedScore:  c.FusedScore,
		})
	}
	return results, nil
}

func (ps *productService) publishEmbed(ctx context.Context, productId uuid.UUID) error {
	payload := dto.PublishEmbedProductMessage{ProductId: productId}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return ps.publisherService.Publish(ctx, payloadJson)
}

func requestToEntity(req *dto.CreateProductRequest) *entity.Product {
	return &entity.Product{
		Id:          uuid.New(),
		ProductType: req.ProductType,
		Brand:       req.Brand,
		Color:       req.Color,
		Material:    req.Material,
		Gender:      req.Gender,
		Size:        req.Size,
		Pattern:     req.Pattern,
		Theme:       req.Theme,
		Fit:         req.Fit,
		SleeveType:  req.SleeveType,
		NeckType:    req.NeckType,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		PriceINR:    req.PriceINR,
		ImageID:     req.ImageID,
		ImagePath:   req.ImagePath,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
}

func entityToResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Id:          p.Id,
		ProductType: p.ProductType,
		Brand:       p.Brand,
		Color:       p.Color,
		Material:    p.Material,
		Gender:      p.Gender,
		Size:        p.Size,
		Pattern:     p.Pattern,
		Theme:       p.Theme,
		Fit:         p.Fit,
		SleeveType:  p.SleeveType,
		NeckType:    p.NeckType,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		PriceINR:    p.PriceINR,
		ImageID:     p.ImageID,
		ImagePath:   p.ImagePath,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
