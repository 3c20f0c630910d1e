package repositories

import (
	"errors"

	"paperdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound     = errors.New("company profile not found")
	ErrAchievementNotFound = errors.New("achievements record not found")
)

// SingletonRepository serves the two single-row tables. Get returns the
// one record; Upsert updates it in place or creates it when missing.
type SingletonRepository interface {
	GetCompany() (*models.Company, error)
	UpsertCompany(company *models.Company) (*models.Company, error)

	GetAchievement() (*models.Achievement, error)
	UpsertAchievement(achievement *models.Achievement) (*models.Achievement, error)
}

type SingletonRepositoryImpl struct {
	db *gorm.DB
}

func NewSingletonRepository(db *gorm.DB) SingletonRepository {
	return &SingletonRepositoryImpl{db: db}
}

func (r *SingletonRepositoryImpl) GetCompany() (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *SingletonRepositoryImpl) UpsertCompany(company *models.Company) (*models.Company, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Company
		err := tx.First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(company).Error
			}
			return err
		}

		company.ID = existing.ID
		company.CreatedAt = existing.CreatedAt
		return tx.Save(company).Error
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *SingletonRepositoryImpl) GetAchievement() (*models.Achievement, error) {
	var achievement models.Achievement
	err := r.db.First(&achievement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAchievementNotFound
		}
		return nil, err
	}
	return &achievement, nil
}

func (r *SingletonRepositoryImpl) UpsertAchievement(achievement *models.Achievement) (*models.Achievement, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Achievement
		err := tx.First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(achievement).Error
			}
			return err
		}

		achievement.ID = existing.ID
		achievement.CreatedAt = existing.CreatedAt
		return tx.Save(achievement).Error
	})
	if err != nil {
		return nil, err
	}
	return achievement, nil
}
