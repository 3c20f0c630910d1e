package repositories

import (
	"errors"
	"time"

	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByMobileNumber(mobile string) (*models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	UpdateFields(userID uint, fields map[string]interface{}) error
	Delete(userID uint) error

	// One-time token lookups; both match against the stored sha256 digest.
	FindByActivationToken(hashedToken string) (*models.User, error)
	FindByResetToken(hashedToken string) (*models.User, error)

	List(q ListQuery) ([]models.User, int64, error)
	FindWriters() ([]models.User, error)
	CountAll() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "LOWER(email) = LOWER(?)", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByMobileNumber(mobile string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "mobile_number = ?", mobile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	if err := r.db.Where("mobile_number = ?", user.MobileNumber).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(userID uint, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID uint) error {
	result := r.db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByActivationToken(hashedToken string) (*models.User, error) {
	var user models.User
	err := r.db.Where("activation_token = ? AND activation_expire > ?", hashedToken, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByResetToken(hashedToken string) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_password_token = ? AND reset_password_expire > ?", hashedToken, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

var userFilterColumns = map[string]string{
	"isactive":   "is_active",
	"islocked":   "is_locked",
	"isadmin":    "is_admin",
	"iscustomer": "is_customer",
	"iswriter":   "is_writer",
}

// AllowedUserFilter maps an external filter key to its column, reporting
// whether the key is recognized.
func AllowedUserFilter(key string) (string, bool) {
	col, ok := userFilterColumns[key]
	return col, ok
}

func (r *UserRepositoryImpl) List(q ListQuery) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	for key, value := range q.Filters {
		col, ok := userFilterColumns[key]
		if !ok {
			logger.GetLogger().Debug("ignoring unknown user filter key", "key", key)
			continue
		}
		query = query.Where(col+" = ?", value)
	}

	if q.Search != "" {
		pattern := searchPattern(q.Search)
		query = query.Where(
			"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := applyPagination(query.Order(q.orderClause("created_at")), q).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) FindWriters() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("is_writer = ? AND is_active = ? AND is_locked = ?", true, true, false).
		Order("first_name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
