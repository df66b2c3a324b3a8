// Package tabs は状態を持たないタブ切り替えウィジェットです。
//
// 選択中の値は呼び出し側が持ち、タブがクリックされると OnValueChange で通知されます。
// 使用例:
//
//	t := tabs.Tabs{
//		BaseID:        "view",
//		Value:         current,
//		OnValueChange: func(v string) { current = v },
//		Items: []tabs.Item{
//			{Value: "all", Label: "すべて"},
//			{Value: "today", Label: "今日"},
//		},
//	}
//	t.Click("today")
package tabs

import "fmt"

// Item は1つのタブとそのパネルです。
type Item struct {
	Value    string
	Label    string
	Disabled bool
	// ForceMount が true のパネルは選択されていなくてもマウントされたまま隠されます。
	ForceMount bool
}

// Tabs はタブの一覧と選択中の値です。
type Tabs struct {
	BaseID        string
	Value         string
	OnValueChange func(value string)
	Items         []Item
}

// Trigger はタブボタンの描画に必要な属性です。
type Trigger struct {
	Value    string
	Label    string
	ID       string
	PanelID  string
	Selected bool
	Disabled bool
	// TabIndex は選択中のタブだけ0で、それ以外は-1です。
	TabIndex int
}

// Panel はタブに対応するコンテンツ領域の属性です。
type Panel struct {
	Value      string
	ID         string
	LabelledBy string
	// Mounted が false のパネルは描画しません。
	Mounted bool
	Hidden  bool
}

func (t Tabs) tabID(value string) string {
	return fmt.Sprintf("%s-tab-%s", t.BaseID, value)
}

func (t Tabs) panelID(value string) string {
	return fmt.Sprintf("%s-panel-%s", t.BaseID, value)
}

// Triggers は各タブボタンの属性を Items の順に返します。
func (t Tabs) Triggers() []Trigger {
	out := make([]Trigger, 0, len(t.Items))
	for _, item := range t.Items {
		selected := item.Value == t.Value
		tabIndex := -1
		if selected {
			tabIndex = 0
		}
		out = append(out, Trigger{
			Value:    item.Value,
			Label:    item.Label,
			ID:       t.tabID(item.Value),
			PanelID:  t.panelID(item.Value),
			Selected: selected,
			Disabled: item.Disabled,
			TabIndex: tabIndex,
		})
	}
	return out
}

// Click は value のタブがクリックされたときの処理です。
// 有効なタブなら OnValueChange を1回だけ呼んで true を返します。
// 無効なタブや存在しないタブでは何もしません。
func (t Tabs) Click(value string) bool {
	item, ok := t.item(value)
	if !ok || item.Disabled {
		return false
	}
	if t.OnValueChange != nil {
		t.OnValueChange(value)
	}
	return true
}

// Panel は value のパネルの属性を返します。
func (t Tabs) Panel(value string) Panel {
	item, _ := t.item(value)
	selected := value == t.Value
	return Panel{
		Value:      value,
		ID:         t.panelID(value),
		LabelledBy: t.tabID(value),
		Mounted:    selected || item.ForceMount,
		Hidden:     !selected,
	}
}

// VisiblePanel は表示中のパネルを返します。選択中の値がどのタブにも一致しなければ false を返します。
func (t Tabs) VisiblePanel() (Panel, bool) {
	if _, ok := t.item(t.Value); !ok {
		return Panel{}, false
	}
	return t.Panel(t.Value), true
}

func (t Tabs) item(value string) (Item, bool) {
	for _, item := range t.Items {
		if item.Value == value {
			return item, true
		}
	}
	return Item{}, false
}
