// Package modelsはTodoとCategoryを定義します。
package models

import (
	"time"
)

// Status はタスクの進捗状態です。
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Valid は定義済みのステータスかどうかを返します。
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority はタスクの優先度です。
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid は定義済みの優先度かどうかを返します。
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo はタスク1件を表します。JSONはフロントエンド (Next.js) に合わせてcamelCaseです。
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"` // status が COMPLETED のときだけ値を持つ
	CategoryID  *string    `json:"categoryId"`
	Category    *Category  `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateTodoRequest はタスク作成リクエストです。
type CreateTodoRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty" binding:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority    Priority `json:"priority,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *Date    `json:"dueDate,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
}

// UpdateTodoRequest はタスクの部分更新リクエストです。
// 指定されたフィールドだけが変更され、null は値のクリアを意味します。
type UpdateTodoRequest struct {
	Title       Optional[string]   `json:"title,omitzero"`
	Description Optional[string]   `json:"description,omitzero"`
	Status      Optional[Status]   `json:"status,omitzero"`
	Priority    Optional[Priority] `json:"priority,omitzero"`
	DueDate     Optional[Date]     `json:"dueDate,omitzero"`
	CompletedAt Optional[Date]     `json:"completedAt,omitzero"`
	CategoryID  Optional[string]   `json:"categoryId,omitzero"`
}

// Empty はどのフィールドも指定されていない場合にtrueを返します。
func (r UpdateTodoRequest) Empty() bool {
	return !r.Title.Set && !r.Description.Set && !r.Status.Set && !r.Priority.Set &&
		!r.DueDate.Set && !r.CompletedAt.Set && !r.CategoryID.Set
}
