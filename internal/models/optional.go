package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Optional はJSONの「キーなし」「null」「値あり」を区別するためのラッパーです。
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some は値ありのOptionalを返します。
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null は明示的にnullを指定したOptionalを返します。
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Ptr は値があればそのポインタを、未指定またはnullならnilを返します。
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// IsZero は omitzero 用です。未指定のときだけゼロとみなします。
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// Date はフォームから送られてくる日付文字列を受け付ける時刻型です。
// "2024-05-01" のような日付のみの形式とRFC3339の両方を解釈します。
type Date struct {
	time.Time
}

// ParseDate は受け付け可能な形式のいずれかで日付を解釈します。
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date: %q", s)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339Nano))
}

// TimePtr はゼロ値ならnil、それ以外はUTCの時刻ポインタを返します。
func (d Date) TimePtr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.UTC()
	return &t
}
