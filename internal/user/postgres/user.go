package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/flowhr/flowhr/internal/core/datamodel/user"
	"github.com/flowhr/flowhr/internal/auth"
	"github.com/flowhr/flowhr/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var m userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&m), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []*userDatamodel.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

func (r *UserRepository) ListVerified(ctx context.Context) ([]*user.User, error) {
	var models []*userDatamodel.User
	if err := r.db.WithContext(ctx).Where("verified = ?", true).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

// CreateIfAbsent inserts the record unless a row with the same email
// already exists. The conflict clause makes concurrent first
// registrations converge on a single row without explicit locking; the
// follow-up read returns whichever record won.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, u *user.User) (*user.User, bool, error) {
	m := user.ToDataModel(u)

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(m)
	if res.Error != nil {
		return nil, false, res.Error
	}

	inserted := res.RowsAffected > 0
	stored, err := r.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, false, err
	}
	return stored, inserted, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, dto user.ProfileUpdateDTO) error {
	updates := map[string]interface{}{}
	if dto.Name != "" {
		updates["name"] = dto.Name
	}
	if dto.Designation != "" {
		updates["designation"] = dto.Designation
	}
	if dto.BankAccount != "" {
		updates["bank_account"] = dto.BankAccount
	}
	if dto.PhotoURL != "" {
		updates["photo_url"] = dto.PhotoURL
	}
	if len(updates) == 0 {
		return nil
	}
	return r.updateFields(ctx, id, updates)
}

func (r *UserRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	return r.updateFields(ctx, id, map[string]interface{}{"verified": verified})
}

func (r *UserRepository) SetRole(ctx context.Context, id int64, role auth.Role) error {
	return r.updateFields(ctx, id, map[string]interface{}{"role": string(role)})
}

func (r *UserRepository) SetStatus(ctx context.Context, id int64, status user.Status) error {
	return r.updateFields(ctx, id, map[string]interface{}{"status": string(status)})
}

func (r *UserRepository) SetSalary(ctx context.Context, id int64, salary int64) error {
	return r.updateFields(ctx, id, map[string]interface{}{"salary": salary})
}

// updateFields touches only the named columns so a write by one authority
// can never regress a field owned by another.
func (r *UserRepository) updateFields(ctx context.Context, id int64, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func fromDataModels(models []*userDatamodel.User) []*user.User {
	users := make([]*user.User, len(models))
	for i, m := range models {
		users[i] = user.FromDataModel(m)
	}
	return users
}
