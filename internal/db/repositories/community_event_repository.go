package repositories

import (
	"context"
	"errors"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/models/entities"

	"gorm.io/gorm"
)

// CommunityEventRepository is the GORM-backed store for user-created events.
// Ownership checks live in the service layer, not here.
type CommunityEventRepository struct {
	db *gorm.DB
}

var _ cache.Store[entities.CommunityEvent] = (*CommunityEventRepository)(nil)

func NewCommunityEventRepository(db *gorm.DB) *CommunityEventRepository {
	return &CommunityEventRepository{db: db}
}

func (r *CommunityEventRepository) List(ctx context.Context) ([]entities.CommunityEvent, error) {
	var events []entities.CommunityEvent
	if err := r.db.WithContext(ctx).Order("date").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *CommunityEventRepository) GetByID(ctx context.Context, id int64) (*entities.CommunityEvent, error) {
	var event entities.CommunityEvent
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *CommunityEventRepository) Create(ctx context.Context, event *entities.CommunityEvent) (*entities.CommunityEvent, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *CommunityEventRepository) Update(ctx context.Context, id int64, patch cache.Patch) (*entities.CommunityEvent, error) {
	res := r.db.WithContext(ctx).Model(&entities.CommunityEvent{}).Where("id = ?", id).Updates(map[string]interface{}(patch))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *CommunityEventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entities.CommunityEvent{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
