// Package entity はroleフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Name はロール名のクローズドな列挙型です。
type Name string

const (
	NameUser  Name = "User"
	NameAdmin Name = "Admin"
)

// Names は定義済みのすべてのロール名を返します。
func Names() []Name {
	return []Name{NameUser, NameAdmin}
}

// Valid は列挙に含まれるロール名かどうかを返します。
func (n Name) Valid() bool {
	switch n {
	case NameUser, NameAdmin:
		return true
	}
	return false
}

// IsPrivileged は管理者ロールかどうかを判定します。
// 管理者ロール名の比較はすべてこの関数を経由します。
func IsPrivileged(n Name) bool {
	return n == NameAdmin
}

// Role はロールのドメインエンティティです。
type Role struct {
	ID        uint
	Name      Name
	IsActive  bool
	IsDelete  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New は有効状態の新しいロールを生成します。
func New(name Name) Role {
	return Role{Name: name, IsActive: true}
}

// Assignable は一般のロール管理APIに公開できるロールかどうかを返します。
func (r Role) Assignable() bool {
	return !r.IsDelete && r.IsActive && !IsPrivileged(r.Name)
}
