package implementation

import (
	"context"
	"errors"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/mapper"
	"shopping-assistant-be/internal/model"
	"shopping-assistant-be/internal/repository/contract"
	"shopping-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ProductEmbeddingRepositoryImpl struct {
	db            *gorm.DB
	mapper        *mapper.ProductEmbeddingMapper
	productMapper *mapper.ProductMapper
}

func NewProductEmbeddingRepository(db *gorm.DB) contract.ProductEmbeddingRepository {
	return &ProductEmbeddingRepositoryImpl{
		db:            db,
		mapper:        mapper.NewProductEmbeddingMapper(),
		productMapper: mapper.NewProductMapper(),
	}
}

func (r *ProductEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ProductEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ProductEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.ProductEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 50).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ProductEmbeddingRepositoryImpl) Update(ctx context.Context, embedding *entity.ProductEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductEmbedding{}, id).Error
}

func (r *ProductEmbeddingRepositoryImpl) DeleteByProductId(ctx context.Context, productId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productId).Delete(&model.ProductEmbedding{}).Error
}

func (r *ProductEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProductEmbedding, error) {
	var m model.ProductEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProductEmbedding, error) {
	var models []*model.ProductEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ProductEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ProductEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ProductEmbedding{}).Count(&count).Error
	return count, err
}

// SearchHybridWithScores scores every product against the provided query
// vectors. Cosine distance in pgvector is 1 - cosine_similarity, so each
// modality score is computed as 1 - (column <=> query_vector). When a query
// vector is nil that modality contributes 0 and is dropped from the ORDER BY.
// Final fusion happens in the retrieval layer; the database orders by the
// best available modality only to bound the candidate set.
func (r *ProductEmbeddingRepositoryImpl) SearchHybridWithScores(ctx context.Context, textVector, imageVector []float32, limit int) ([]*contract.ScoredProduct, error) {
	if textVector == nil && imageVector == nil {
		return nil, errors.New("hybrid search requires at least one query vector")
	}
	if limit <= 0 {
		limit = 20
	}

	type result struct {
		model.Product
		TextScore  float64
		ImageScore float64
	}
	var results []result

	selectExpr := "products.*"
	orderExpr := ""
	args := []interface{}{}

	if textVector != nil {
		textVec := pgvector.NewVector(textVector)
		selectExpr += ", 1 - (context_embedding <=> ?) as text_score"
		args = append(args, textVec)
		orderExpr = "text_score DESC"
	} else {
		selectExpr += ", 0 as text_score"
	}
	if imageVector != nil {
		imageVec := pgvector.NewVector(imageVector)
		selectExpr += ", 1 - (content_embedding <=> ?) as image_score"
		args = append(args, imageVec)
		// The image modality dominates fusion, so prefer it for the
		// database-side cut when both vectors are present.
		orderExpr = "image_score DESC"
	} else {
		selectExpr += ", 0 as image_score"
	}

	err := r.db.WithContext(ctx).
		Table("product_embeddings").
		Select(selectExpr, args...).
		Joins("JOIN products ON products.id = product_embeddings.product_id").
		Where("product_embeddings.deleted_at IS NULL").
		Where("products.deleted_at IS NULL").
		Order(orderExpr).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredProduct, len(results))
	for i, row := range results {
		p := row.Product
		scored[i] = &contract.ScoredProduct{
			Product:    r.productMapper.ToEntity(&p),
			TextScore:  row.TextScore,
			ImageScore: row.ImageScore,
		}
	}
	return scored, nil
}
