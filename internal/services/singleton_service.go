package services

import (
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services/dto"
	"paperdesk_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// SingletonService manages the company profile and the public
// achievements counters, each of which has exactly one row. Saving
// creates the record on first write and updates it afterwards.
type SingletonService interface {
	GetCompany() (*models.Company, error)
	SaveCompany(req *dto.CompanyRequest) (*models.Company, error)

	GetAchievement() (*models.Achievement, error)
	SaveAchievement(req *dto.AchievementRequest) (*models.Achievement, error)
}

type SingletonServiceImpl struct {
	repo repositories.SingletonRepository
}

func NewSingletonService(repo repositories.SingletonRepository) SingletonService {
	return &SingletonServiceImpl{repo: repo}
}

func (s *SingletonServiceImpl) GetCompany() (*models.Company, error) {
	company, err := s.repo.GetCompany()
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company", "Company profile has not been set up")
		}
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func (s *SingletonServiceImpl) SaveCompany(req *dto.CompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		TwitterLink:  req.TwitterLink,
		FacebookLink: req.FacebookLink,
		Logo:         datatypes.NewJSONType(req.Logo),
		Images:       datatypes.NewJSONSlice(req.Images),
	}

	saved, err := s.repo.UpsertCompany(company)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return saved, nil
}

func (s *SingletonServiceImpl) GetAchievement() (*models.Achievement, error) {
	achievement, err := s.repo.GetAchievement()
	if err != nil {
		if apperrors.Is(err, repositories.ErrAchievementNotFound) {
			return nil, apperrors.NewNotFoundError("achievements", "Achievements record has not been set up")
		}
		return nil, apperrors.InternalError(err)
	}
	return achievement, nil
}

func (s *SingletonServiceImpl) SaveAchievement(req *dto.AchievementRequest) (*models.Achievement, error) {
	achievement := &models.Achievement{
		OrdersCompleted:   req.OrdersCompleted,
		SatisfiedClients:  req.SatisfiedClients,
		PositiveFeedbacks: req.PositiveFeedbacks,
		FreebiesReleased:  req.FreebiesReleased,
	}

	saved, err := s.repo.UpsertAchievement(achievement)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return saved, nil
}
