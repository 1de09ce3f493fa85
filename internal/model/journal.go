package model

import "time"

// Journal - 일기 엔트리
type Journal struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"` // null 가능 (수정 전)
}

// CreateJournalRequest - 일기 작성 요청 구조체
type CreateJournalRequest struct {
	Title   string `json:"title" binding:"required,max=500"`
	Content string `json:"content" binding:"required"`
	// 선택 입력: 과거 날짜로 기록할 때 MM-DD-YYYY 형식
	CreatedAt *string `json:"created_at"`
}

// UpdateJournalRequest - 일기 수정 요청 구조체 (nil 필드는 유지)
type UpdateJournalRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=500"`
	Content *string `json:"content" binding:"omitempty,min=1"`
}
