package dbschema

import (
	"djigbo-server/internal/domain/feedback"
	"djigbo-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Feedback{})
}

// Feedback persists one free-form feedback submission.
type Feedback struct {
	BaseModel
	UserID       string `gorm:"type:varchar(255);not null;index"`
	FeedbackText string `gorm:"type:text;not null"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// NewSchemaFeedback converts a domain entry into a schema instance.
func NewSchemaFeedback(e *feedback.Entry) *Feedback {
	if e == nil {
		return nil
	}
	return &Feedback{
		BaseModel: BaseModel{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
		},
		UserID:       e.UserID,
		FeedbackText: e.FeedbackText,
	}
}

// EtoD converts a schema row back to the domain representation.
func (f *Feedback) EtoD() *feedback.Entry {
	if f == nil {
		return nil
	}
	return &feedback.Entry{
		ID:           f.ID,
		UserID:       f.UserID,
		FeedbackText: f.FeedbackText,
		CreatedAt:    f.CreatedAt,
	}
}
