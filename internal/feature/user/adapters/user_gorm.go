// Package adapters はuserフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/feature/user/usecase"
)

// PasswordHasher はパスワードをハッシュ化します。
// Goの慣例に従い、インターフェースはプロバイダー（password）ではなくコンシューマー（adapters）が定義します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// userGorm はUserRepositoryとStatsRepositoryのGORM実装です。
type userGorm struct {
	db     *gorm.DB
	hasher PasswordHasher
}

// userGormがリポジトリインターフェースを実装していることをコンパイル時に検証します。
var (
	_ usecase.UserRepository  = (*userGorm)(nil)
	_ usecase.StatsRepository = (*userGorm)(nil)
)

// NewUserRepository は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB, hasher PasswordHasher) *userGorm {
	return &userGorm{db: db, hasher: hasher}
}

// notDeleted は論理削除されていないユーザーに絞り込むスコープです。
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("users.is_delete = ?", false)
}

// Create はユーザーを追加します。
// 保留中のパスワードは書き込み前にハッシュ化されます。
func (r *userGorm) Create(ctx context.Context, u entity.User) (entity.User, error) {
	m, err := r.toModel(u)
	if err != nil {
		return entity.User{}, err
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return entity.User{}, translateWriteError(err)
	}
	return r.reload(ctx, m.ID)
}

// Save は既存ユーザーの全カラムを書き戻します。
// 保留中のパスワードがない場合、保存済みのハッシュはそのまま維持されます。
func (r *userGorm) Save(ctx context.Context, u entity.User) (entity.User, error) {
	if u.ID == 0 {
		return entity.User{}, fmt.Errorf("save user: missing id")
	}
	m, err := r.toModel(u)
	if err != nil {
		return entity.User{}, err
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return entity.User{}, translateWriteError(err)
	}
	return r.reload(ctx, m.ID)
}

// FindByEmail はライフサイクル状態に関係なくメールアドレスでユーザーを取得します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, r.db.Where("users.email = ?", email))
}

// FindByID は論理削除されていないユーザーをIDで取得します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, r.db.Scopes(notDeleted).Where("users.id = ?", id))
}

// FindActiveByID は論理削除されておらず有効なユーザーをIDで取得します。
func (r *userGorm) FindActiveByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, r.db.Scopes(notDeleted).Where("users.id = ? AND users.is_active = ?", id, true))
}

// FindByResetToken は期限内のリセットトークンを持つユーザーを取得します。
func (r *userGorm) FindByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	if token == "" {
		return nil, usecase.ErrUserNotFound
	}
	return r.first(ctx, r.db.Scopes(notDeleted).
		Where("users.reset_password_token = ? AND users.reset_password_expires > ?", token, now))
}

// EmailInUse はexceptID以外の有効なユーザーがemailを使用しているかを返します。
func (r *userGorm) EmailInUse(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Scopes(notDeleted).
		Where("email = ? AND is_active = ? AND id <> ?", email, true, exceptID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListExcept は指定ID以外の論理削除されていないユーザーをID順に返します。
func (r *userGorm) ListExcept(ctx context.Context, id uint) ([]entity.User, error) {
	var models []UserModel
	err := r.db.WithContext(ctx).
		Preload("Role").
		Scopes(notDeleted).
		Where("users.id <> ?", id).
		Order("users.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToEntity())
	}
	return out, nil
}

// CreatedBetween は[from, to)に作成されたユーザーの作成日時を返します。
// 削除済みや無効なユーザーも含みます。
func (r *userGorm) CreatedBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var created []time.Time
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Pluck("created_at", &created).Error
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CountAll は保存されている全ユーザー数を返します。
func (r *userGorm) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userGorm) toModel(u entity.User) (*UserModel, error) {
	if plain, ok := u.PendingPassword(); ok {
		hash, err := r.hasher.Hash(plain)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u = u.WithPasswordHash(hash)
	}
	if u.PasswordHash == "" {
		return nil, fmt.Errorf("user %q has no password", u.Email)
	}
	return UserModelFromEntity(u), nil
}

func (r *userGorm) reload(ctx context.Context, id uint) (entity.User, error) {
	u, err := r.first(ctx, r.db.Where("users.id = ?", id))
	if err != nil {
		return entity.User{}, err
	}
	return *u, nil
}

func (r *userGorm) first(ctx context.Context, q *gorm.DB) (*entity.User, error) {
	var m UserModel
	if err := q.WithContext(ctx).Preload("Role").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// translateWriteError はドライバー固有の一意制約違反をErrEmailOrUsernameInUseに変換します。
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return usecase.ErrEmailOrUsernameInUse
	}
	// MySQLエラー1062: ユニークキーの重複エントリ
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return usecase.ErrEmailOrUsernameInUse
	}
	// PostgreSQL 23505: unique_violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usecase.ErrEmailOrUsernameInUse
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return usecase.ErrEmailOrUsernameInUse
	}
	return err
}
