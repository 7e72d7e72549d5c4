package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// store is the shared gorm-backed implementation behind every driver.
type store struct {
	db *gorm.DB
}

func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if TransactionFromContext(ctx) != nil {
		// Already inside a transaction, reuse it.
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}

func (s *store) CreateUser(ctx context.Context, user *User) error {
	err := getDBFromContext(ctx, s.db).Create(user).Error
	return wrapWriteError(err)
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := getDBFromContext(ctx, s.db).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return &user, nil
}

func (s *store) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := getDBFromContext(ctx, s.db).First(&user, id).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return &user, nil
}

func (s *store) UpdateUser(ctx context.Context, user *User) error {
	return wrapWriteError(getDBFromContext(ctx, s.db).Save(user).Error)
}

func (s *store) ListUsersByEnterprise(ctx context.Context, enterpriseID uint) ([]*User, error) {
	users := make([]*User, 0)
	err := getDBFromContext(ctx, s.db).
		Where("enterprise_id = ?", enterpriseID).
		Order("name asc").
		Find(&users).Error
	return users, err
}

func (s *store) CreateEnterprise(ctx context.Context, enterprise *Enterprise) error {
	return wrapWriteError(getDBFromContext(ctx, s.db).Create(enterprise).Error)
}

func (s *store) GetEnterpriseByCNPJ(ctx context.Context, cnpj string) (*Enterprise, error) {
	var enterprise Enterprise
	err := getDBFromContext(ctx, s.db).Where("cnpj = ?", cnpj).First(&enterprise).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return &enterprise, nil
}

func (s *store) GetEnterpriseByID(ctx context.Context, id uint) (*Enterprise, error) {
	var enterprise Enterprise
	err := getDBFromContext(ctx, s.db).First(&enterprise, id).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return &enterprise, nil
}

func (s *store) CreateGroup(ctx context.Context, group *Group) error {
	return wrapWriteError(getDBFromContext(ctx, s.db).Create(group).Error)
}

func (s *store) GetGroup(ctx context.Context, id uint) (*Group, error) {
	var group Group
	err := getDBFromContext(ctx, s.db).First(&group, id).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return &group, nil
}

func (s *store) ListGroupsByEnterprise(ctx context.Context, enterpriseID uint) ([]*Group, error) {
	groups := make([]*Group, 0)
	err := getDBFromContext(ctx, s.db).
		Where("enterprise_id = ?", enterpriseID).
		Order("name asc").
		Find(&groups).Error
	return groups, err
}

// DeleteGroup removes a group owned by the enterprise. Dependent users
// fall back to no-group (minimal capabilities) rather than keeping a
// dangling reference.
func (s *store) DeleteGroup(ctx context.Context, id, enterpriseID uint) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		db := getDBFromContext(ctx, s.db)

		var group Group
		if err := db.Where("id = ? AND enterprise_id = ?", id, enterpriseID).First(&group).Error; err != nil {
			return wrapReadError(err)
		}

		if err := db.Model(&User{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}

		return db.Delete(&group).Error
	})
}

func (s *store) CreateRelease(ctx context.Context, release *Release) error {
	return wrapWriteError(getDBFromContext(ctx, s.db).Create(release).Error)
}

func (s *store) GetRelease(ctx context.Context, id, enterpriseID uint) (*Release, error) {
	var release Release
	err := getDBFromContext(ctx, s.db).
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&release).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return &release, nil
}

func (s *store) ListReleasesByPeriod(ctx context.Context, periodID, enterpriseID uint) ([]*Release, error) {
	releases := make([]*Release, 0)
	err := getDBFromContext(ctx, s.db).
		Where("period_id = ? AND enterprise_id = ?", periodID, enterpriseID).
		Order("created_at asc").
		Find(&releases).Error
	return releases, err
}

func (s *store) UpdateRelease(ctx context.Context, release *Release) error {
	return wrapWriteError(getDBFromContext(ctx, s.db).Save(release).Error)
}

func (s *store) DeleteRelease(ctx context.Context, id, enterpriseID uint) error {
	res := getDBFromContext(ctx, s.db).
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		Delete(&Release{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *store) CreatePeriod(ctx context.Context, period *Period) error {
	return wrapWriteError(getDBFromContext(ctx, s.db).Create(period).Error)
}

func (s *store) GetPeriod(ctx context.Context, id, enterpriseID uint) (*Period, error) {
	var period Period
	err := getDBFromContext(ctx, s.db).
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		First(&period).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return &period, nil
}

func (s *store) ListPeriodsByEnterprise(ctx context.Context, enterpriseID uint) ([]*Period, error) {
	periods := make([]*Period, 0)
	err := getDBFromContext(ctx, s.db).
		Where("enterprise_id = ?", enterpriseID).
		Order("year desc, month desc").
		Find(&periods).Error
	return periods, err
}

func (s *store) UpdatePeriod(ctx context.Context, period *Period) error {
	return wrapWriteError(getDBFromContext(ctx, s.db).Save(period).Error)
}

func (s *store) DeletePeriod(ctx context.Context, id, enterpriseID uint) error {
	res := getDBFromContext(ctx, s.db).
		Where("id = ? AND enterprise_id = ?", id, enterpriseID).
		Delete(&Period{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func wrapReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}
