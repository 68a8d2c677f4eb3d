package model

import "time"

// Comment is a user review stored under its pharmacy.
type Comment struct {
	ID         string    `json:"id" firestore:"-" gorm:"type:varchar(64);primaryKey"`
	PharmacyID string    `json:"-" firestore:"-" gorm:"type:varchar(64);not null;index"`
	UserID     string    `json:"userId" firestore:"userId" gorm:"type:varchar(128);not null;index"`
	Comment    string    `json:"comment" firestore:"comment" gorm:"type:text;not null"`
	Stars      float64   `json:"stars" firestore:"stars" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

// CreateCommentInput is the payload for adding a comment.
type CreateCommentInput struct {
	PharmacyID string  `json:"pharmacyId" validate:"required"`
	Comment    string  `json:"comment" validate:"required"`
	Stars      float64 `json:"stars"`
}

// CreateCommentResponse is returned by a successful comment creation.
type CreateCommentResponse struct {
	Message   string `json:"message"`
	CommentID string `json:"commentId"`
}
