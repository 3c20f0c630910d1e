package repositories

import (
	"errors"

	"paperdesk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContentNotFound = errors.New("record not found")

// ContentEntity constrains the generic repository to the flat editorial
// records, which share one name-plus-description CRUD shape.
type ContentEntity interface {
	models.Page | models.Post | models.Essay | models.Phase | models.Point
}

type ContentRepository[T ContentEntity] interface {
	Create(record *T) error
	FindByID(id uint) (*T, error)
	List(q ListQuery) ([]T, int64, error)
	FindAll() ([]T, error)
	Save(record *T) error
	Delete(id uint) error
}

type ContentRepositoryImpl[T ContentEntity] struct {
	db *gorm.DB
}

func NewContentRepository[T ContentEntity](db *gorm.DB) ContentRepository[T] {
	return &ContentRepositoryImpl[T]{db: db}
}

func (r *ContentRepositoryImpl[T]) Create(record *T) error {
	return r.db.Create(record).Error
}

func (r *ContentRepositoryImpl[T]) FindByID(id uint) (*T, error) {
	var record T
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *ContentRepositoryImpl[T]) List(q ListQuery) ([]T, int64, error) {
	var record T
	query := r.db.Model(&record)

	if q.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", searchPattern(q.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []T
	err := applyPagination(query.Order(q.orderClause("created_at")), q).Find(&records).Error
	return records, total, err
}

func (r *ContentRepositoryImpl[T]) FindAll() ([]T, error) {
	var records []T
	err := r.db.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *ContentRepositoryImpl[T]) Save(record *T) error {
	return r.db.Save(record).Error
}

func (r *ContentRepositoryImpl[T]) Delete(id uint) error {
	var record T
	result := r.db.Delete(&record, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContentNotFound
	}
	return nil
}
