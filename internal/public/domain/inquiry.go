package domain

import "time"

// Inquiry は問い合わせフォームから受け付けた1件分の内容。
type Inquiry struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
