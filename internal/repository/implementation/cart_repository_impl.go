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

type CartRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CartMapper
}

func NewCartRepository(db *gorm.DB) contract.CartRepository {
	return &CartRepositoryImpl{
		db:     db,
		mapper: mapper.NewCartMapper(),
	}
}

func (r *CartRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CartRepositoryImpl) Create(ctx context.Context, item *entity.CartItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *CartRepositoryImpl) Update(ctx context.Context, item *entity.CartItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *CartRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}

func (r *CartRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.CartItem{}).Error
}

func (r *CartRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CartItem, error) {
	var m model.CartItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CartRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CartItem, error) {
	var models []*model.CartItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CartRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CartItem{}).Count(&count).Error
	return count, err
}
