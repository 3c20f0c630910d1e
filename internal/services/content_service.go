package services

import (
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services/dto"
	"paperdesk_backend/pkg/apperrors"
)

// ContentService is the shared CRUD surface for the flat editorial
// records. One generic implementation serves pages, posts, essays,
// phases and points.
type ContentService[T repositories.ContentEntity] interface {
	Create(req *dto.ContentRequest) (*T, error)
	Get(id uint) (*T, error)
	List(q repositories.ListQuery) (*dto.PaginatedResult, error)
	All() ([]T, error)
	Update(id uint, req *dto.ContentRequest) (*T, error)
	Delete(id uint) error
}

type ContentServiceImpl[T repositories.ContentEntity] struct {
	repo   repositories.ContentRepository[T]
	domain string
	make   func(name, description string) T
	apply  func(record *T, name, description string)
}

func (s *ContentServiceImpl[T]) Create(req *dto.ContentRequest) (*T, error) {
	record := s.make(req.Name, req.Description)
	if err := s.repo.Create(&record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &record, nil
}

func (s *ContentServiceImpl[T]) Get(id uint) (*T, error) {
	record, err := s.repo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContentNotFound) {
			return nil, apperrors.NewNotFoundError(s.domain, "Record not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return record, nil
}

func (s *ContentServiceImpl[T]) List(q repositories.ListQuery) (*dto.PaginatedResult, error) {
	records, total, err := s.repo.List(q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaginatedResult{TotalCount: total, Count: len(records), Items: records}, nil
}

func (s *ContentServiceImpl[T]) All() ([]T, error) {
	records, err := s.repo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return records, nil
}

func (s *ContentServiceImpl[T]) Update(id uint, req *dto.ContentRequest) (*T, error) {
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	s.apply(record, req.Name, req.Description)
	if err := s.repo.Save(record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return record, nil
}

func (s *ContentServiceImpl[T]) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrContentNotFound) {
			return apperrors.NewNotFoundError(s.domain, "Record not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func NewPageService(repo repositories.ContentRepository[models.Page]) ContentService[models.Page] {
	return &ContentServiceImpl[models.Page]{
		repo:   repo,
		domain: "pages",
		make: func(name, description string) models.Page {
			return models.Page{Name: name, Description: description}
		},
		apply: func(record *models.Page, name, description string) {
			record.Name = name
			record.Description = description
		},
	}
}

func NewPostService(repo repositories.ContentRepository[models.Post]) ContentService[models.Post] {
	return &ContentServiceImpl[models.Post]{
		repo:   repo,
		domain: "posts",
		make: func(name, description string) models.Post {
			return models.Post{Name: name, Description: description}
		},
		apply: func(record *models.Post, name, description string) {
			record.Name = name
			record.Description = description
		},
	}
}

func NewEssayService(repo repositories.ContentRepository[models.Essay]) ContentService[models.Essay] {
	return &ContentServiceImpl[models.Essay]{
		repo:   repo,
		domain: "essays",
		make: func(name, description string) models.Essay {
			return models.Essay{Name: name, Description: description}
		},
		apply: func(record *models.Essay, name, description string) {
			record.Name = name
			record.Description = description
		},
	}
}

func NewPhaseService(repo repositories.ContentRepository[models.Phase]) ContentService[models.Phase] {
	return &ContentServiceImpl[models.Phase]{
		repo:   repo,
		domain: "phases",
		make: func(name, description string) models.Phase {
			return models.Phase{Name: name, Description: description}
		},
		apply: func(record *models.Phase, name, description string) {
			record.Name = name
			record.Description = description
		},
	}
}

func NewPointService(repo repositories.ContentRepository[models.Point]) ContentService[models.Point] {
	return &ContentServiceImpl[models.Point]{
		repo:   repo,
		domain: "points",
		make: func(name, description string) models.Point {
			return models.Point{Name: name, Description: description}
		},
		apply: func(record *models.Point, name, description string) {
			record.Name = name
			record.Description = description
		},
	}
}
