package repositories

import (
	"context"
	"errors"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/models/entities"

	"gorm.io/gorm"
)

// EventRepository is the GORM-backed store for official scheduled events
type EventRepository struct {
	db *gorm.DB
}

var _ cache.Store[entities.ScheduledEvent] = (*EventRepository)(nil)

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]entities.ScheduledEvent, error) {
	var events []entities.ScheduledEvent
	if err := r.db.WithContext(ctx).Order("date").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entities.ScheduledEvent, error) {
	var event entities.ScheduledEvent
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entities.ScheduledEvent) (*entities.ScheduledEvent, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, id int64, patch cache.Patch) (*entities.ScheduledEvent, error) {
	res := r.db.WithContext(ctx).Model(&entities.ScheduledEvent{}).Where("id = ?", id).Updates(map[string]interface{}(patch))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entities.ScheduledEvent{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
