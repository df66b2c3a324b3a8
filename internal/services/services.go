// Package services はTodoとCategoryのビジネスロジックを扱います。
package services

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidTodo はタスクの入力値が不正な場合のエラーです。
	ErrInvalidTodo = errors.New("invalid todo")
	// ErrInvalidCategory はカテゴリの入力値が不正な場合のエラーです。
	ErrInvalidCategory = errors.New("invalid category")
)

const (
	maxTitleLength        = 255
	maxCategoryNameLength = 100
)

var validate = validator.New()

// Clock は現在時刻を返す関数です。テストで固定時刻を注入するために使います。
type Clock func() time.Time

func defaultClock() time.Time {
	return time.Now()
}
