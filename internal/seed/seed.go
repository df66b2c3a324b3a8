// Package seed はTOMLファイルから初期データを投入します。
//
// ファイルの形式:
//
//	[[categories]]
//	name = "仕事"
//	color = "#EF4444"
//
//	[[todos]]
//	title = "週次レポート"
//	priority = "HIGH"
//	due-date = "2025-07-04"
//	category = "仕事"
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
	"github.com/furoku/ultimate-todo-app/internal/services"
)

// File はシードファイルの内容です。
type File struct {
	Categories []Category `toml:"categories"`
	Todos      []Todo     `toml:"todos"`
}

type Category struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

type Todo struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Status      string `toml:"status"`
	Priority    string `toml:"priority"`
	DueDate     string `toml:"due-date"`
	// Category はカテゴリ名で指定します。
	Category string `toml:"category"`
}

// Result は投入した件数です。
type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	TodosCreated      int
}

// LoadFile はシードファイルを読み込みます。
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	f, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f, nil
}

// Parse はTOMLを解釈します。知らないキーがあればエラーにします。
func Parse(data string) (*File, error) {
	var f File
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// Seeder はサービス経由でシードを投入します。入力の検証はAPIと同じです。
type Seeder struct {
	todoService     *services.TodoService
	categoryService *services.CategoryService
	logger          zerolog.Logger
}

func NewSeeder(todoService *services.TodoService, categoryService *services.CategoryService, logger zerolog.Logger) *Seeder {
	return &Seeder{todoService: todoService, categoryService: categoryService, logger: logger}
}

// Apply はカテゴリ、タスクの順に投入します。
// 同名のカテゴリが既にある場合は作成せずにそれを使います。タスクは毎回作成されます。
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result

	existing, err := s.categoryService.GetCategories(ctx)
	if err != nil {
		return res, err
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	for _, c := range f.Categories {
		if _, ok := byName[c.Name]; ok {
			res.CategoriesSkipped++
			continue
		}
		created, err := s.categoryService.CreateCategory(ctx, models.CreateCategoryRequest{Name: c.Name, Color: c.Color})
		if err != nil {
			if errors.Is(err, repositories.ErrDuplicateCategoryName) {
				res.CategoriesSkipped++
				continue
			}
			return res, fmt.Errorf("category %q: %w", c.Name, err)
		}
		byName[created.Name] = created.ID
		res.CategoriesCreated++
	}

	for i, t := range f.Todos {
		req, err := t.request(byName)
		if err != nil {
			return res, fmt.Errorf("todo #%d %q: %w", i+1, t.Title, err)
		}
		if _, err := s.todoService.CreateTodo(ctx, req); err != nil {
			return res, fmt.Errorf("todo #%d %q: %w", i+1, t.Title, err)
		}
		res.TodosCreated++
	}

	s.logger.Info().
		Int("categories_created", res.CategoriesCreated).
		Int("categories_skipped", res.CategoriesSkipped).
		Int("todos_created", res.TodosCreated).
		Msg("seed applied")
	return res, nil
}

func (t Todo) request(categories map[string]string) (models.CreateTodoRequest, error) {
	req := models.CreateTodoRequest{
		Title:    t.Title,
		Status:   models.Status(t.Status),
		Priority: models.Priority(t.Priority),
	}
	if t.Description != "" {
		desc := t.Description
		req.Description = &desc
	}
	if t.DueDate != "" {
		due, err := models.ParseDate(t.DueDate)
		if err != nil {
			return req, err
		}
		req.DueDate = &due
	}
	if t.Category != "" {
		id, ok := categories[t.Category]
		if !ok {
			return req, fmt.Errorf("unknown category %q", t.Category)
		}
		req.CategoryID = &id
	}
	return req, nil
}
