package types

import (
  "time"
  "gorm.io/datatypes"
)

// Card categories match the four otolaryngology subspecialties the app covers.
const (
  CategoryLaryngology = "laryngology"
  CategoryRhinology   = "rhinology"
  CategoryOtology     = "otology"
  CategoryHeadNeck    = "head-neck"
)

const (
  DifficultyEasy   = "easy"
  DifficultyMedium = "medium"
  DifficultyHard   = "hard"
)

// Card type variants. The payload column carries the type-specific fields
// (question/options/answer, hotspot coordinates, step lists...) as opaque
// JSON; the session engine never looks inside it.
const (
  CardTypeQuiz           = "quiz"
  CardTypeFlashcard      = "flashcard"
  CardTypeFillBlank      = "fill-blank"
  CardTypeAnimatedText   = "animated-text"
  CardTypeAnatomyHotspot = "anatomy-hotspot"
  CardTypeSurgicalSteps  = "surgical-steps"
  CardTypeImageQuiz      = "image-quiz"
)

// Card is an atomic unit of study content. Rows are seeded from the bundled
// catalog and treated as immutable at runtime. Seq is the externally assigned
// display order within a stack.
type Card struct {
  ID          string          `gorm:"primaryKey;column:id" json:"id"`
  Stack       string          `gorm:"index;not null;column:stack" json:"stack"`
  Category    string          `gorm:"index;not null;column:category" json:"category"`
  Difficulty  string          `gorm:"not null;column:difficulty" json:"difficulty"`
  Type        string          `gorm:"not null;column:type" json:"type"`
  Seq         int             `gorm:"not null;column:seq" json:"seq"`
  Payload     datatypes.JSON  `gorm:"column:payload" json:"payload"`
  CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Card) TableName() string {
  return "card"
}

func ValidCategory(c string) bool {
  switch c {
  case CategoryLaryngology, CategoryRhinology, CategoryOtology, CategoryHeadNeck:
    return true
  }
  return false
}

func ValidDifficulty(d string) bool {
  switch d {
  case DifficultyEasy, DifficultyMedium, DifficultyHard:
    return true
  }
  return false
}

func ValidCardType(t string) bool {
  switch t {
  case CardTypeQuiz, CardTypeFlashcard, CardTypeFillBlank, CardTypeAnimatedText,
    CardTypeAnatomyHotspot, CardTypeSurgicalSteps, CardTypeImageQuiz:
    return true
  }
  return false
}
