package repositories

import (
	"context"
	"errors"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/entities"

	"gorm.io/gorm"
)

// AccountRepository is the GORM-backed store for accounts. It implements
// cache.KeyedStore[entities.Account] with login as the natural key.
type AccountRepository struct {
	db *gorm.DB
}

var _ cache.KeyedStore[entities.Account] = (*AccountRepository)(nil)

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) List(ctx context.Context) ([]entities.Account, error) {
	var accounts []entities.Account
	if err := r.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entities.Account, error) {
	var account entities.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByKey(ctx context.Context, login string) (*entities.Account, error) {
	var account entities.Account
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) (*entities.Account, error) {
	if len(account.Favorites) > constants.MaxFavoriteSkills {
		account.Favorites = account.Favorites[:constants.MaxFavoriteSkills]
	}
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, constants.NewConflict("an account with this login already exists")
		}
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) Update(ctx context.Context, id int64, patch cache.Patch) (*entities.Account, error) {
	// Map-based updates bypass GORM serializers, so JSON-backed columns are
	// marshalled here.
	patch, err := marshalJSONColumns(patch, "favorites")
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&entities.Account{}).Where("id = ?", id).Updates(map[string]interface{}(patch))
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, constants.NewConflict("an account with this login already exists")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entities.Account{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
