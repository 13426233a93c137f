package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
)

type StallRepository interface {
	FindByID(id uint) (*model.FoodStall, error)
	FindActive() ([]model.FoodStall, error)
	FindByOwnerID(ownerID uint) ([]model.FoodStall, error)
	CountActiveByOwner(ownerID uint) (int64, error)
	Update(stall *model.FoodStall) error

	CreateMenuItem(item *model.MenuItem) error
	FindMenuItem(id uint) (*model.MenuItem, error)
	UpdateMenuItem(item *model.MenuItem) error
	DeleteMenuItem(id uint) error
}

type stallRepository struct {
	db *gorm.DB
}

func NewStallRepository(db *gorm.DB) StallRepository {
	return &stallRepository{db: db}
}

func (r *stallRepository) preloadStall() *gorm.DB {
	return r.db.Preload("Location").Preload("MenuItems").Preload("Owner")
}

func (r *stallRepository) FindByID(id uint) (*model.FoodStall, error) {
	var stall model.FoodStall
	if err := r.preloadStall().First(&stall, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stall, nil
}

func (r *stallRepository) FindActive() ([]model.FoodStall, error) {
	var stalls []model.FoodStall
	err := r.preloadStall().
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&stalls).Error
	return stalls, err
}

func (r *stallRepository) FindByOwnerID(ownerID uint) ([]model.FoodStall, error) {
	var stalls []model.FoodStall
	err := r.preloadStall().Where("owner_id = ?", ownerID).Find(&stalls).Error
	return stalls, err
}

func (r *stallRepository) CountActiveByOwner(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.FoodStall{}).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Count(&count).Error
	return count, err
}

func (r *stallRepository) Update(stall *model.FoodStall) error {
	return r.db.Save(stall).Error
}

func (r *stallRepository) CreateMenuItem(item *model.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *stallRepository) FindMenuItem(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *stallRepository) UpdateMenuItem(item *model.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *stallRepository) DeleteMenuItem(id uint) error {
	return r.db.Delete(&model.MenuItem{}, id).Error
}
