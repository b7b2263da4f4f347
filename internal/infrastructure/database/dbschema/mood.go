package dbschema

import (
	"djigbo-server/internal/domain/mood"
	"djigbo-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(MoodEntry{}, MoodDailyStat{})
}

// MoodEntry persists one mood check-in. The score range is enforced by the
// domain layer and backed by a check constraint.
type MoodEntry struct {
	BaseModel
	UserID    string  `gorm:"type:varchar(255);not null;index"`
	MoodScore int     `gorm:"not null;check:mood_score >= 1 AND mood_score <= 5"`
	Thoughts  *string `gorm:"type:text"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

// NewSchemaMoodEntry converts a domain entry into a schema instance.
func NewSchemaMoodEntry(e *mood.Entry) *MoodEntry {
	if e == nil {
		return nil
	}
	return &MoodEntry{
		BaseModel: BaseModel{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		},
		UserID:    e.UserID,
		MoodScore: e.MoodScore,
		Thoughts:  e.Thoughts,
	}
}

// EtoD converts a schema row back to the domain representation.
func (m *MoodEntry) EtoD() *mood.Entry {
	if m == nil {
		return nil
	}
	return &mood.Entry{
		ID:        m.ID,
		UserID:    m.UserID,
		MoodScore: m.MoodScore,
		Thoughts:  m.Thoughts,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MoodDailyStat is the per-day rollup maintained by the nightly job.
type MoodDailyStat struct {
	BaseModel
	Date             string  `gorm:"type:varchar(10);not null;uniqueIndex"`
	AvgMood          float64 `gorm:"not null"`
	ParticipantCount int64   `gorm:"not null;default:0"`
	EntryCount       int64   `gorm:"not null;default:0"`
	CommonThoughts   *string `gorm:"type:text"`
}

func (MoodDailyStat) TableName() string {
	return "mood_stats"
}

// EtoD converts a schema row back to the domain representation.
func (m *MoodDailyStat) EtoD() *mood.DailyStat {
	if m == nil {
		return nil
	}
	return &mood.DailyStat{
		ID:               m.ID,
		Date:             m.Date,
		AvgMood:          m.AvgMood,
		ParticipantCount: m.ParticipantCount,
		EntryCount:       m.EntryCount,
		CommonThoughts:   m.CommonThoughts,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
