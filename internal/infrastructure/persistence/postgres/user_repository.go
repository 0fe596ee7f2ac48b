package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/entities"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository e ports.ProfileStore
type UserRepository struct {
	conn
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{conn{db: db}}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var model UserModel

	// Soft delete: ignorar registros deletados
	if err := r.getDB(ctx).Where("id = ? AND deleted_at IS NULL", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	email = valueobjects.NormalizeEmail(email)
	if err := r.getDB(ctx).Where("email = ? AND deleted_at IS NULL", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	return r.getDB(ctx).Save(r.toModel(user)).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	query := r.getDB(ctx).Model(&UserModel{}).Where("deleted_at IS NULL")
	query = scoped(query, "organization_id", filters.OrganizationID)

	// Aplicar filtros
	if filters.Role != nil {
		query = query.Where("role = ?", string(*filters.Role))
	}

	// Paginação
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize
	query = query.Order("created_at DESC").Limit(pageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(models))
	for _, model := range models {
		user, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// OrganizationIDByEmail implementa ports.ProfileStore sobre a tabela users local
func (r *UserRepository) OrganizationIDByEmail(ctx context.Context, email string) (string, error) {
	var orgID sql.NullString

	row := r.getDB(ctx).Model(&UserModel{}).
		Select("organization_id").
		Where("email = ? AND deleted_at IS NULL", valueobjects.NormalizeEmail(email)).
		Limit(1).
		Row()
	if err := row.Scan(&orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return orgID.String, nil
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:             user.ID,
		Email:          user.Email.String(),
		FullName:       user.FullName,
		Phone:          user.Phone,
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		DeletedAt:      user.DeletedAt,
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:             model.ID,
		Email:          email,
		FullName:       model.FullName,
		Phone:          model.Phone,
		PasswordHash:   model.PasswordHash,
		Role:           entities.NormalizeRole(model.Role),
		OrganizationID: model.OrganizationID,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
		DeletedAt:      model.DeletedAt,
	}, nil
}
