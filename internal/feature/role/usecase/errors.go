// Package usecase はroleフィーチャーのビジネスロジックを実装します。
package usecase

import "account_backend/internal/shared/apperr"

var (
	// ErrRoleNotFound は対象ロールが存在しない、または一般APIに公開されない場合に返されます。
	ErrRoleNotFound = apperr.New(apperr.KindNotFound, "role not found")

	// ErrInvalidRoleName は列挙に含まれないロール名が指定された場合に返されます。
	ErrInvalidRoleName = apperr.New(apperr.KindBadRequest, "invalid role name")

	// ErrPrivilegedRole は管理者ロールを一般APIから作成しようとした場合に返されます。
	ErrPrivilegedRole = apperr.New(apperr.KindBadRequest, "this role cannot be created")

	// ErrRoleExists は同名の削除されていないロールが既に存在する場合に返されます。
	ErrRoleExists = apperr.New(apperr.KindConflict, "role already exists")
)
