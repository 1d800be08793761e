package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
	StoreName *string
	Bio       *string
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	var taken int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return ErrDuplicate
	}

	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindUserByID returns nil, nil when no such user exists.
func (r *GormRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByLogin matches login against username first, then email.
// Emails are stored lowercased, so the email comparison ignores case.
func (r *GormRepo) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN username = ? THEN 0 ELSE 1 END",
			Vars:               []any{login},
			WithoutParentheses: true,
		}}).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*models.User, error) {
	fields := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	set("first_name", upd.FirstName)
	set("last_name", upd.LastName)
	set("phone", upd.Phone)
	set("address", upd.Address)
	set("store_name", upd.StoreName)
	set("bio", upd.Bio)

	if len(fields) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.FindUserByID(ctx, id)
}
