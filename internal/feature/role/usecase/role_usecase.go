package usecase

import (
	"context"
	"errors"
	"fmt"

	"account_backend/internal/feature/role/domain/entity"
)

// RoleRepository はロールの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type RoleRepository interface {
	// ListActive は削除されておらず有効なロールを返します。
	ListActive(ctx context.Context) ([]entity.Role, error)

	// FindActiveByID は削除されておらず有効なロールをIDで取得します。
	// 見つからない場合はErrRoleNotFoundを返します。
	FindActiveByID(ctx context.Context, id uint) (*entity.Role, error)

	// FindByName は削除されていないロールを名前で取得します。
	// 見つからない場合はErrRoleNotFoundを返します。
	FindByName(ctx context.Context, name entity.Name) (*entity.Role, error)

	// Create はロールを保存し、採番済みの値を返します。
	Create(ctx context.Context, role entity.Role) (entity.Role, error)
}

// RoleUsecase はロールレジストリのビジネスロジックを実装します。
type RoleUsecase struct {
	roles RoleRepository
}

// NewRoleUsecase はRoleUsecaseの新しいインスタンスを生成します。
func NewRoleUsecase(roles RoleRepository) *RoleUsecase {
	return &RoleUsecase{roles: roles}
}

// ListAssignableRoles は一般に割り当て可能なロールの一覧を返します。
// 管理者ロールはデータの状態にかかわらず含まれません。
func (u *RoleUsecase) ListAssignableRoles(ctx context.Context) ([]entity.Role, error) {
	roles, err := u.roles.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	out := make([]entity.Role, 0, len(roles))
	for _, r := range roles {
		if r.Assignable() {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetRole はIDでロールを取得します。管理者ロールは存在しないものとして扱います。
func (u *RoleUsecase) GetRole(ctx context.Context, id uint) (*entity.Role, error) {
	r, err := u.roles.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Assignable() {
		return nil, ErrRoleNotFound
	}
	return r, nil
}

// CreateRole は新しいロールを作成します。
func (u *RoleUsecase) CreateRole(ctx context.Context, name string) (*entity.Role, error) {
	n := entity.Name(name)
	if !n.Valid() {
		return nil, ErrInvalidRoleName
	}
	if entity.IsPrivileged(n) {
		return nil, ErrPrivilegedRole
	}

	_, err := u.roles.FindByName(ctx, n)
	switch {
	case err == nil:
		return nil, ErrRoleExists
	case !errors.Is(err, ErrRoleNotFound):
		return nil, fmt.Errorf("find role %s: %w", n, err)
	}

	created, err := u.roles.Create(ctx, entity.New(n))
	if err != nil {
		return nil, fmt.Errorf("create role %s: %w", n, err)
	}
	return &created, nil
}

// RoleByName は名前でロールを取得します。管理者ロールも対象です。
// サインアップや初期データ投入など内部処理専用で、HTTPからは呼び出されません。
func (u *RoleUsecase) RoleByName(ctx context.Context, name entity.Name) (*entity.Role, error) {
	return u.roles.FindByName(ctx, name)
}

// SeedDefaults は列挙されたロールのうち未作成のものを作成します。
// 管理者ロールを作成できる唯一の経路です。
func (u *RoleUsecase) SeedDefaults(ctx context.Context) ([]entity.Role, error) {
	var created []entity.Role
	for _, n := range entity.Names() {
		_, err := u.roles.FindByName(ctx, n)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrRoleNotFound) {
			return created, fmt.Errorf("find role %s: %w", n, err)
		}
		r, err := u.roles.Create(ctx, entity.New(n))
		if err != nil {
			return created, fmt.Errorf("seed role %s: %w", n, err)
		}
		created = append(created, r)
	}
	return created, nil
}
