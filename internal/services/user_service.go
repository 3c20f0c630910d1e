package services

import (
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services/dto"
	"paperdesk_backend/pkg/apperrors"
)

type UserService interface {
	List(q repositories.ListQuery) (*dto.PaginatedResult, error)
	GetByID(id uint) (*models.User, error)
	UpdateFlags(id uint, req *dto.UpdateUserFlagsRequest) (*models.User, error)
	ListWriters() ([]dto.UserListItem, error)
	Delete(id uint) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) List(q repositories.ListQuery) (*dto.PaginatedResult, error) {
	users, total, err := s.userRepo.List(q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, flattenUser(&u))
	}

	return &dto.PaginatedResult{
		TotalCount: total,
		Count:      len(items),
		Items:      items,
	}, nil
}

func (s *UserServiceImpl) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateFlags(id uint, req *dto.UpdateUserFlagsRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.IsLocked != nil {
		fields["is_locked"] = *req.IsLocked
	}
	if req.IsAdmin != nil {
		fields["is_admin"] = *req.IsAdmin
	}
	if req.IsCustomer != nil {
		fields["is_customer"] = *req.IsCustomer
	}
	if req.IsWriter != nil {
		fields["is_writer"] = *req.IsWriter
	}

	if len(fields) == 0 {
		return nil, apperrors.NewBadRequestError("No account flags provided")
	}

	if err := s.userRepo.UpdateFields(id, fields); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(id)
}

func (s *UserServiceImpl) ListWriters() ([]dto.UserListItem, error) {
	writers, err := s.userRepo.FindWriters()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserListItem, 0, len(writers))
	for _, u := range writers {
		items = append(items, flattenUser(&u))
	}
	return items, nil
}

func (s *UserServiceImpl) Delete(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("users", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func flattenUser(u *models.User) dto.UserListItem {
	return dto.UserListItem{
		ID:           u.ID,
		FullName:     u.FullName(),
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		IsActive:     u.IsActive,
		IsLocked:     u.IsLocked,
		IsAdmin:      u.IsAdmin,
		IsCustomer:   u.IsCustomer,
		IsWriter:     u.IsWriter,
	}
}
