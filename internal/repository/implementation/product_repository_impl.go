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
	"gorm.io/gorm"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) CreateBulk(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	models := make([]*model.Product, len(products))
	for i, p := range products {
		models[i] = r.mapper.ToModel(p)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*products[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Product, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Product{}).Count(&count).Error
	return count, err
}

// FindByImageIDs resolves catalog image ids to products, keeping the order
// of the input slice. Missing ids are skipped.
func (r *ProductRepositoryImpl) FindByImageIDs(ctx context.Context, imageIDs []string) ([]*entity.Product, error) {
	if len(imageIDs) == 0 {
		return nil, nil
	}
	var models []*model.Product
	if err := r.db.WithContext(ctx).Where("image_id IN ?", imageIDs).Find(&models).Error; err != nil {
		return nil, err
	}
	byImageID := make(map[string]*model.Product, len(models))
	for _, m := range models {
		byImageID[m.ImageID] = m
	}
	entities := make([]*entity.Product, 0, len(imageIDs))
	for _, id := range imageIDs {
		if m, ok := byImageID[id]; ok {
			entities = append(entities, r.mapper.ToEntity(m))
		}
	}
	return entities, nil
}
