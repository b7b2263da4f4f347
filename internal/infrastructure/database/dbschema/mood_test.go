package dbschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodDailyStatEtoD(t *testing.T) {
	thoughts := "tired from the hike; excited for the campfire"
	entity := &MoodDailyStat{
		Date:             "2025-07-01",
		AvgMood:          3.6,
		ParticipantCount: 5,
		EntryCount:       8,
		CommonThoughts:   &thoughts,
	}

	stat := entity.EtoD()
	require.NotNil(t, stat)
	assert.Equal(t, "2025-07-01", stat.Date)
	assert.Equal(t, 3.6, stat.AvgMood)
	assert.Equal(t, int64(5), stat.ParticipantCount)
	assert.Equal(t, int64(8), stat.EntryCount)
	require.NotNil(t, stat.CommonThoughts)
	assert.Equal(t, thoughts, *stat.CommonThoughts)
}
