package models

import "time"

// DefaultCategoryColor は色が指定されなかったカテゴリに使うインディゴです。
const DefaultCategoryColor = "#6366F1"

// Category はタスクをまとめる名前付きの色ラベルです。
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryWithTodos は所属するタスクを含むカテゴリです。
type CategoryWithTodos struct {
	Category
	Todos []*Todo `json:"todos"`
}

// CreateCategoryRequest はカテゴリ作成リクエストです。
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color,omitempty" binding:"omitempty,hexcolor"`
}

// UpdateCategoryRequest はカテゴリ更新リクエストです。
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Color *string `json:"color,omitempty" binding:"omitempty,hexcolor"`
}
