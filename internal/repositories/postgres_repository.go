package repositories

import (
	"context"
	"errors"

	"github.com/shareity/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the PostgreSQL tables used by the database store
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.NGO{},
		&models.Need{},
		&models.Notification{},
		&models.Feedback{},
	)
}

func gormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = newID(user.ID)
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email (case-insensitive) from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

// GetUsers retrieves all users from PostgreSQL
func (r *PostgresUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":       user.Name,
		"phone":      user.Phone,
		"location":   user.Location,
		"bio":        user.Bio,
		"updated_at": user.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresNGORepository implements NGORepository for PostgreSQL
type PostgresNGORepository struct {
	db *gorm.DB
}

// NewPostgresNGORepository creates a new PostgresNGORepository
func NewPostgresNGORepository(db *gorm.DB) *PostgresNGORepository {
	return &PostgresNGORepository{db: db}
}

// SaveNGO inserts the profile or replaces the existing one with the same ID
func (r *PostgresNGORepository) SaveNGO(ctx context.Context, ngo *models.NGO) error {
	ngo.ID = newID(ngo.ID)
	return r.db.WithContext(ctx).Save(ngo).Error
}

// GetNGOByID retrieves an NGO profile by ID
func (r *PostgresNGORepository) GetNGOByID(ctx context.Context, id string) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).First(&ngo, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &ngo, nil
}

// GetNGOs lists NGO profiles filtered by category and a free-text query over name, description and location
func (r *PostgresNGORepository) GetNGOs(ctx context.Context, filter models.NGOFilter) ([]models.NGO, error) {
	ngos := []models.NGO{}
	q := r.db.WithContext(ctx).Order("created_at")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR location ILIKE ?", like, like, like)
	}
	if err := q.Find(&ngos).Error; err != nil {
		return nil, err
	}
	return ngos, nil
}

// PostgresNeedRepository implements NeedRepository for PostgreSQL
type PostgresNeedRepository struct {
	db *gorm.DB
}

// NewPostgresNeedRepository creates a new PostgresNeedRepository
func NewPostgresNeedRepository(db *gorm.DB) *PostgresNeedRepository {
	return &PostgresNeedRepository{db: db}
}

// CreateNeed creates a new need in PostgreSQL
func (r *PostgresNeedRepository) CreateNeed(ctx context.Context, need *models.Need) error {
	need.ID = newID(need.ID)
	return r.db.WithContext(ctx).Create(need).Error
}

// GetNeedByID retrieves a need by ID
func (r *PostgresNeedRepository) GetNeedByID(ctx context.Context, id string) (*models.Need, error) {
	var need models.Need
	if err := r.db.WithContext(ctx).First(&need, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &need, nil
}

// GetNeeds lists needs, newest first
func (r *PostgresNeedRepository) GetNeeds(ctx context.Context, filter models.NeedFilter) ([]models.Need, error) {
	needs := []models.Need{}
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.NgoID != "" {
		q = q.Where("ngo_id = ?", filter.NgoID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Find(&needs).Error; err != nil {
		return nil, err
	}
	return needs, nil
}

// UpdateNeed saves every column of an existing need
func (r *PostgresNeedRepository) UpdateNeed(ctx context.Context, need *models.Need) error {
	res := r.db.WithContext(ctx).Model(need).Select("*").Omit("created_at").Updates(need)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = newID(notification.ID)
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *postgresNotificationRepository) GetNotificationByID(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, gormErr(err)
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ? AND read = false", userID).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) GetAllNotifications(ctx context.Context) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

type postgresFeedbackRepository struct {
	db *gorm.DB
}

// NewPostgresFeedbackRepository creates a FeedbackRepository backed by PostgreSQL
func NewPostgresFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &postgresFeedbackRepository{db: db}
}

func (r *postgresFeedbackRepository) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	feedback.ID = newID(feedback.ID)
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *postgresFeedbackRepository) GetFeedbacks(ctx context.Context) ([]models.Feedback, error) {
	feedbacks := []models.Feedback{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}
