package model

import "time"

type Tag struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     *string   `json:"color,omitempty" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateTagRequest struct {
	Name  string  `json:"name" binding:"required,min=2,max=50"`
	Color *string `json:"color,omitempty"`
}

type UpdateTagParams struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Color *string `json:"color,omitempty"`
}
