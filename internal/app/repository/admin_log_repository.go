package repository

import (
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
)

// AdminLogRepository persists the append-only audit log. Create is the only
// write; there is deliberately no update or delete method.
type AdminLogRepository interface {
	// Create inserts an entry using the given handle, which may be an open
	// transaction so the entry commits atomically with its governance action.
	Create(tx *gorm.DB, entry *model.AdminLogEntry) error
	List(limit, offset int) ([]model.AdminLogEntry, error)
	FindAll() ([]model.AdminLogEntry, error)
	Count() (int64, error)
}

type adminLogRepository struct {
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Create(tx *gorm.DB, entry *model.AdminLogEntry) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(entry).Error
}

func (r *adminLogRepository) List(limit, offset int) ([]model.AdminLogEntry, error) {
	var entries []model.AdminLogEntry
	err := r.db.Preload("Admin").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *adminLogRepository) FindAll() ([]model.AdminLogEntry, error) {
	var entries []model.AdminLogEntry
	err := r.db.Preload("Admin").
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *adminLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.AdminLogEntry{}).Count(&count).Error
	return count, err
}
