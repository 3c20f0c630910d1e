package repositories

import (
	"errors"

	"paperdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrLevelNotFound     = errors.New("level not found")
	ErrPaperNotFound     = errors.New("paper not found")
	ErrPaperTypeNotFound = errors.New("paper type not found")
)

type CatalogRepository interface {
	CreateLevel(level *models.Level) error
	FindLevelByID(id uint) (*models.Level, error)
	FindLevels(q ListQuery) ([]models.Level, int64, error)
	FindAllLevels() ([]models.Level, error)
	SaveLevel(level *models.Level) error
	DeleteLevel(id uint) error

	CreatePaper(paper *models.Paper) error
	FindPaperByID(id uint) (*models.Paper, error)
	FindPapers(q ListQuery) ([]models.Paper, int64, error)
	FindAllPapers() ([]models.Paper, error)
	SavePaper(paper *models.Paper) error
	ReplacePaperLevels(paper *models.Paper, levels []models.Level) error
	DeletePaper(id uint) error

	CreatePaperType(pt *models.PaperType) error
	FindPaperTypeByID(id uint) (*models.PaperType, error)
	FindPaperTypes(q ListQuery) ([]models.PaperType, int64, error)
	FindAllPaperTypes() ([]models.PaperType, error)
	SavePaperType(pt *models.PaperType) error
	DeletePaperType(id uint) error
}

type CatalogRepositoryImpl struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

// Levels

func (r *CatalogRepositoryImpl) CreateLevel(level *models.Level) error {
	return r.db.Create(level).Error
}

func (r *CatalogRepositoryImpl) FindLevelByID(id uint) (*models.Level, error) {
	var level models.Level
	err := r.db.Preload("Papers").First(&level, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}
	return &level, nil
}

func (r *CatalogRepositoryImpl) FindLevels(q ListQuery) ([]models.Level, int64, error) {
	query := r.db.Model(&models.Level{})

	if q.Search != "" {
		pattern := searchPattern(q.Search)
		query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var levels []models.Level
	err := applyPagination(query.Order(q.orderClause("created_at")), q).Find(&levels).Error
	return levels, total, err
}

func (r *CatalogRepositoryImpl) FindAllLevels() ([]models.Level, error) {
	var levels []models.Level
	err := r.db.Order("name ASC").Find(&levels).Error
	return levels, err
}

func (r *CatalogRepositoryImpl) SaveLevel(level *models.Level) error {
	return r.db.Save(level).Error
}

func (r *CatalogRepositoryImpl) DeleteLevel(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		level := models.Level{BaseModel: models.BaseModel{ID: id}}
		if err := tx.Model(&level).Association("Papers").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&models.Level{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLevelNotFound
		}
		return nil
	})
}

// Papers

func (r *CatalogRepositoryImpl) CreatePaper(paper *models.Paper) error {
	return r.db.Create(paper).Error
}

func (r *CatalogRepositoryImpl) FindPaperByID(id uint) (*models.Paper, error) {
	var paper models.Paper
	err := r.db.Preload("Levels").Preload("PaperTypes").First(&paper, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}
	return &paper, nil
}

func (r *CatalogRepositoryImpl) FindPapers(q ListQuery) ([]models.Paper, int64, error) {
	query := r.db.Model(&models.Paper{})

	if q.Search != "" {
		pattern := searchPattern(q.Search)
		query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var papers []models.Paper
	err := applyPagination(query.Preload("Levels").Order(q.orderClause("created_at")), q).
		Find(&papers).Error
	return papers, total, err
}

func (r *CatalogRepositoryImpl) FindAllPapers() ([]models.Paper, error) {
	var papers []models.Paper
	err := r.db.Preload("Levels").Preload("PaperTypes").Order("name ASC").Find(&papers).Error
	return papers, err
}

func (r *CatalogRepositoryImpl) SavePaper(paper *models.Paper) error {
	return r.db.Omit("Levels").Save(paper).Error
}

func (r *CatalogRepositoryImpl) ReplacePaperLevels(paper *models.Paper, levels []models.Level) error {
	return r.db.Model(paper).Association("Levels").Replace(levels)
}

func (r *CatalogRepositoryImpl) DeletePaper(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		paper := models.Paper{BaseModel: models.BaseModel{ID: id}}
		if err := tx.Model(&paper).Association("Levels").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&models.Paper{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPaperNotFound
		}
		return nil
	})
}

// Paper types

func (r *CatalogRepositoryImpl) CreatePaperType(pt *models.PaperType) error {
	return r.db.Create(pt).Error
}

func (r *CatalogRepositoryImpl) FindPaperTypeByID(id uint) (*models.PaperType, error) {
	var pt models.PaperType
	err := r.db.Preload("Paper").First(&pt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaperTypeNotFound
		}
		return nil, err
	}
	return &pt, nil
}

func (r *CatalogRepositoryImpl) FindPaperTypes(q ListQuery) ([]models.PaperType, int64, error) {
	query := r.db.Model(&models.PaperType{})

	if q.Search != "" {
		pattern := searchPattern(q.Search)
		query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var types []models.PaperType
	err := applyPagination(query.Preload("Paper").Order(q.orderClause("created_at")), q).
		Find(&types).Error
	return types, total, err
}

func (r *CatalogRepositoryImpl) FindAllPaperTypes() ([]models.PaperType, error) {
	var types []models.PaperType
	err := r.db.Preload("Paper").Order("name ASC").Find(&types).Error
	return types, err
}

func (r *CatalogRepositoryImpl) SavePaperType(pt *models.PaperType) error {
	return r.db.Save(pt).Error
}

func (r *CatalogRepositoryImpl) DeletePaperType(id uint) error {
	result := r.db.Delete(&models.PaperType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaperTypeNotFound
	}
	return nil
}
