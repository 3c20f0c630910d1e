package services

import (
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services/dto"
	"paperdesk_backend/pkg/apperrors"
)

type CatalogService interface {
	CreateLevel(req *dto.LevelRequest) (*models.Level, error)
	GetLevel(id uint) (*models.Level, error)
	ListLevels(q repositories.ListQuery) (*dto.PaginatedResult, error)
	AllLevels() ([]models.Level, error)
	UpdateLevel(id uint, req *dto.LevelRequest) (*models.Level, error)
	DeleteLevel(id uint) error

	CreatePaper(req *dto.PaperRequest) (*models.Paper, error)
	GetPaper(id uint) (*models.Paper, error)
	ListPapers(q repositories.ListQuery) (*dto.PaginatedResult, error)
	AllPapers() ([]models.Paper, error)
	UpdatePaper(id uint, req *dto.PaperRequest) (*models.Paper, error)
	DeletePaper(id uint) error

	CreatePaperType(req *dto.PaperTypeRequest) (*models.PaperType, error)
	GetPaperType(id uint) (*models.PaperType, error)
	ListPaperTypes(q repositories.ListQuery) (*dto.PaginatedResult, error)
	AllPaperTypes() ([]models.PaperType, error)
	UpdatePaperType(id uint, req *dto.PaperTypeRequest) (*models.PaperType, error)
	DeletePaperType(id uint) error
}

type CatalogServiceImpl struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &CatalogServiceImpl{catalogRepo: catalogRepo}
}

// Levels

func (s *CatalogServiceImpl) CreateLevel(req *dto.LevelRequest) (*models.Level, error) {
	level := &models.Level{
		Name:         req.Name,
		Description:  req.Description,
		PricePerPage: req.PricePerPage,
	}
	if err := s.catalogRepo.CreateLevel(level); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return level, nil
}

func (s *CatalogServiceImpl) GetLevel(id uint) (*models.Level, error) {
	level, err := s.catalogRepo.FindLevelByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrLevelNotFound) {
			return nil, apperrors.NewNotFoundError("catalog", "Level not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return level, nil
}

func (s *CatalogServiceImpl) ListLevels(q repositories.ListQuery) (*dto.PaginatedResult, error) {
	levels, total, err := s.catalogRepo.FindLevels(q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaginatedResult{TotalCount: total, Count: len(levels), Items: levels}, nil
}

func (s *CatalogServiceImpl) AllLevels() ([]models.Level, error) {
	levels, err := s.catalogRepo.FindAllLevels()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return levels, nil
}

func (s *CatalogServiceImpl) UpdateLevel(id uint, req *dto.LevelRequest) (*models.Level, error) {
	level, err := s.GetLevel(id)
	if err != nil {
		return nil, err
	}

	level.Name = req.Name
	level.Description = req.Description
	level.PricePerPage = req.PricePerPage

	if err := s.catalogRepo.SaveLevel(level); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return level, nil
}

func (s *CatalogServiceImpl) DeleteLevel(id uint) error {
	if err := s.catalogRepo.DeleteLevel(id); err != nil {
		if apperrors.Is(err, repositories.ErrLevelNotFound) {
			return apperrors.NewNotFoundError("catalog", "Level not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Papers

func (s *CatalogServiceImpl) CreatePaper(req *dto.PaperRequest) (*models.Paper, error) {
	paper := &models.Paper{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.catalogRepo.CreatePaper(paper); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if len(req.LevelIDs) > 0 {
		if err := s.linkLevels(paper, req.LevelIDs); err != nil {
			return nil, err
		}
	}
	return s.GetPaper(paper.ID)
}

func (s *CatalogServiceImpl) GetPaper(id uint) (*models.Paper, error) {
	paper, err := s.catalogRepo.FindPaperByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaperNotFound) {
			return nil, apperrors.NewNotFoundError("catalog", "Paper not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return paper, nil
}

func (s *CatalogServiceImpl) ListPapers(q repositories.ListQuery) (*dto.PaginatedResult, error) {
	papers, total, err := s.catalogRepo.FindPapers(q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaginatedResult{TotalCount: total, Count: len(papers), Items: papers}, nil
}

func (s *CatalogServiceImpl) AllPapers() ([]models.Paper, error) {
	papers, err := s.catalogRepo.FindAllPapers()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return papers, nil
}

func (s *CatalogServiceImpl) UpdatePaper(id uint, req *dto.PaperRequest) (*models.Paper, error) {
	paper, err := s.GetPaper(id)
	if err != nil {
		return nil, err
	}

	paper.Name = req.Name
	paper.Description = req.Description

	if err := s.catalogRepo.SavePaper(paper); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.LevelIDs != nil {
		if err := s.linkLevels(paper, req.LevelIDs); err != nil {
			return nil, err
		}
	}
	return s.GetPaper(paper.ID)
}

func (s *CatalogServiceImpl) DeletePaper(id uint) error {
	if err := s.catalogRepo.DeletePaper(id); err != nil {
		if apperrors.Is(err, repositories.ErrPaperNotFound) {
			return apperrors.NewNotFoundError("catalog", "Paper not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CatalogServiceImpl) linkLevels(paper *models.Paper, levelIDs []uint) error {
	levels := make([]models.Level, 0, len(levelIDs))
	for _, levelID := range levelIDs {
		level, err := s.catalogRepo.FindLevelByID(levelID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrLevelNotFound) {
				return apperrors.NewNotFoundError("catalog", "Level not found")
			}
			return apperrors.InternalError(err)
		}
		levels = append(levels, *level)
	}

	if err := s.catalogRepo.ReplacePaperLevels(paper, levels); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Paper types

func (s *CatalogServiceImpl) CreatePaperType(req *dto.PaperTypeRequest) (*models.PaperType, error) {
	if req.PaperID != nil {
		if _, err := s.GetPaper(*req.PaperID); err != nil {
			return nil, err
		}
	}

	pt := &models.PaperType{
		Name:         req.Name,
		Description:  req.Description,
		PricePerPage: req.PricePerPage,
		PaperID:      req.PaperID,
	}
	if err := s.catalogRepo.CreatePaperType(pt); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return pt, nil
}

func (s *CatalogServiceImpl) GetPaperType(id uint) (*models.PaperType, error) {
	pt, err := s.catalogRepo.FindPaperTypeByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaperTypeNotFound) {
			return nil, apperrors.NewNotFoundError("catalog", "Paper type not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return pt, nil
}

func (s *CatalogServiceImpl) ListPaperTypes(q repositories.ListQuery) (*dto.PaginatedResult, error) {
	types, total, err := s.catalogRepo.FindPaperTypes(q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaginatedResult{TotalCount: total, Count: len(types), Items: types}, nil
}

func (s *CatalogServiceImpl) AllPaperTypes() ([]models.PaperType, error) {
	types, err := s.catalogRepo.FindAllPaperTypes()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return types, nil
}

func (s *CatalogServiceImpl) UpdatePaperType(id uint, req *dto.PaperTypeRequest) (*models.PaperType, error) {
	pt, err := s.GetPaperType(id)
	if err != nil {
		return nil, err
	}

	if req.PaperID != nil {
		if _, err := s.GetPaper(*req.PaperID); err != nil {
			return nil, err
		}
		pt.PaperID = req.PaperID
	}

	pt.Name = req.Name
	pt.Description = req.Description
	pt.PricePerPage = req.PricePerPage

	if err := s.catalogRepo.SavePaperType(pt); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return pt, nil
}

func (s *CatalogServiceImpl) DeletePaperType(id uint) error {
	if err := s.catalogRepo.DeletePaperType(id); err != nil {
		if apperrors.Is(err, repositories.ErrPaperTypeNotFound) {
			return apperrors.NewNotFoundError("catalog", "Paper type not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
