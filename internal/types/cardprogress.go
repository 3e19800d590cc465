package types

import (
  "time"
  "github.com/google/uuid"
)

// CardProgress is the per-(user, card) progress row. TimesSeen is only ever
// incremented in SQL, never set from a client value, so concurrent seen
// events cannot lose updates. Rows are created by upsert and never deleted
// through the API.
type CardProgress struct {
  ID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID           uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_card,unique" json:"user_id"`
  User             *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  CardID           string      `gorm:"not null;index:idx_user_card,unique;column:card_id" json:"card_id"`
  Card             *Card       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CardID;references:ID" json:"card,omitempty"`
  Bookmarked       bool        `gorm:"not null;default:false;column:bookmarked" json:"bookmarked"`
  Completed        bool        `gorm:"not null;default:false;column:completed" json:"completed"`
  DifficultyRating *int        `gorm:"column:difficulty_rating" json:"difficulty_rating,omitempty"`
  TimesSeen        int         `gorm:"not null;default:0;column:times_seen" json:"times_seen"`
  LastSeenAt       *time.Time  `gorm:"column:last_seen_at" json:"last_seen_at,omitempty"`
  CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}

func (CardProgress) TableName() string {
  return "card_progress"
}

// CardProgressUpdate is a partial update of the flag fields. Nil means
// "leave untouched". TimesSeen is deliberately absent: it can only move
// through the seen-increment path.
type CardProgressUpdate struct {
  Bookmarked       *bool
  Completed        *bool
  DifficultyRating *int
}

func (u CardProgressUpdate) Empty() bool {
  return u.Bookmarked == nil && u.Completed == nil && u.DifficultyRating == nil
}
