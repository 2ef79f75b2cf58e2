package api

import "time"

// Request DTOs

type CreateNoteRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=private public unlisted"`
	IsDraft    bool   `json:"is_draft"`
}

type UpdateNoteRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content"`
	Visibility string `json:"visibility" validate:"required,oneof=private public unlisted"`
	IsDraft    bool   `json:"is_draft"`
}

// Response DTOs

type NoteResponse struct {
	Id         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Visibility string    `json:"visibility"`
	IsDraft    bool      `json:"is_draft"`
	AuthorId   int64     `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}
