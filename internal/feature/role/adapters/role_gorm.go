// Package adapters はroleフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account_backend/internal/feature/role/domain/entity"
	"account_backend/internal/feature/role/usecase"
)

// roleGorm はRoleRepositoryインターフェースのGORM実装です。
type roleGorm struct {
	db *gorm.DB
}

// roleGormがRoleRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.RoleRepository = (*roleGorm)(nil)

// NewRoleRepository は指定されたgorm.DB接続でroleGormの新しいインスタンスを生成します。
func NewRoleRepository(db *gorm.DB) *roleGorm {
	return &roleGorm{db: db}
}

// live は削除されておらず有効なロールに絞り込むスコープです。
func live(db *gorm.DB) *gorm.DB {
	return db.Where("is_delete = ? AND is_active = ?", false, true)
}

// ListActive は削除されておらず有効なロールを、管理者ロールを除いてID順に返します。
func (r *roleGorm) ListActive(ctx context.Context) ([]entity.Role, error) {
	var models []RoleModel
	err := r.db.WithContext(ctx).
		Scopes(live).
		Where("name <> ?", string(entity.NameAdmin)).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Role, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToEntity())
	}
	return out, nil
}

// FindActiveByID は削除されておらず有効なロールをIDで取得します。
func (r *roleGorm) FindActiveByID(ctx context.Context, id uint) (*entity.Role, error) {
	var m RoleModel
	if err := r.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRoleNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// FindByName は削除されていないロールを名前で取得します。
func (r *roleGorm) FindByName(ctx context.Context, name entity.Name) (*entity.Role, error) {
	var m RoleModel
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_delete = ?", string(name), false).
		Order("id ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRoleNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// Create はロールを保存します。
func (r *roleGorm) Create(ctx context.Context, role entity.Role) (entity.Role, error) {
	m := RoleModelFromEntity(role)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return entity.Role{}, err
	}
	return m.ToEntity(), nil
}
