// Package notify はユーザー向けの通知 (トースト) を扱います。
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Kind は通知の種類です。
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

const (
	TitleSuccess = "成功"
	TitleError   = "エラー"
)

// Notifier は通知を表示する先です。
type Notifier interface {
	Notify(kind Kind, title, message string)
}

// Success は成功通知を送ります。
func Success(n Notifier, message string) {
	n.Notify(KindSuccess, TitleSuccess, message)
}

// Error はエラー通知を送ります。
func Error(n Notifier, message string) {
	n.Notify(KindError, TitleError, message)
}

// Console は通知を端末に色付きで書き出します。
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	body    lipgloss.Style
}

// NewConsole は out に書き出すConsoleを作成します。
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d73a4a")),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d4")),
	}
}

func (c *Console) Notify(kind Kind, title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	style := c.success
	if kind == KindError {
		style = c.failure
	}
	fmt.Fprintf(c.out, "%s %s\n", style.Render(title), c.body.Render(message))
}

// Notification は Recorder が記録した1件の通知です。
type Notification struct {
	Kind    Kind
	Title   string
	Message string
}

// Recorder は通知をメモリに記録します。
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *Recorder) Notify(kind Kind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Kind: kind, Title: title, Message: message})
}

// Notifications は記録された通知のコピーを返します。
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Last は最後の通知を返します。通知がなければ false を返します。
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}
