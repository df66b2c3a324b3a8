// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import "errors"

var (
	// ErrTodoNotFound はTODOが見つからない場合のエラーです。
	ErrTodoNotFound = errors.New("todo not found")
	// ErrCategoryNotFound はカテゴリが見つからない場合のエラーです。
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategoryName は同名のカテゴリが既に存在する場合のエラーです。
	ErrDuplicateCategoryName = errors.New("category with this name already exists")
)
