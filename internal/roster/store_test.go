package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pucklab/nhl-totals/internal/models"
	"github.com/pucklab/nhl-totals/internal/roster"
)

func TestUpsertFirstWriteWins(t *testing.T) {
	s := roster.NewStore()
	s.Upsert(models.GoalieRecord{Name: "Juuse Saros", Team: "NSH", Skill: 0.55})
	s.Upsert(models.GoalieRecord{Name: "Juuse Saros", Team: "XXX", Skill: -0.10})

	rec, ok := s.Lookup("Juuse Saros")
	require.True(t, ok)
	assert.Equal(t, "NSH", rec.Team)
	assert.Equal(t, 0.55, rec.Skill)
	assert.Equal(t, 1, s.Len())
}

func TestUpsertIgnoresEmptyName(t *testing.T) {
	s := roster.NewStore()
	s.Upsert(models.GoalieRecord{Name: "", Team: "BOS"})
	assert.Equal(t, 0, s.Len())
}

func TestLookupMissing(t *testing.T) {
	s := roster.NewStore()
	_, ok := s.Lookup("Nobody")
	assert.False(t, ok)
}

func TestAllNamesSortedAndDeduplicated(t *testing.T) {
	s := roster.FromRecords([]models.GoalieRecord{
		{Name: "Juuse Saros", Team: "NSH", Skill: 0.5},
		{Name: "Connor Hellebuyck", Team: "WPG", Skill: 0.7},
		{Name: "Juuse Saros", Team: "NSH", Skill: 0.9},
		{Name: "Igor Shesterkin", Team: "NYR", Skill: 0.75},
	})

	assert.Equal(t, []string{"Connor Hellebuyck", "Igor Shesterkin", "Juuse Saros"}, s.AllNames())
}

func TestRecordsOrderedByName(t *testing.T) {
	s := roster.FromRecords([]models.GoalieRecord{
		{Name: "Juuse Saros", Team: "NSH"},
		{Name: "Connor Hellebuyck", Team: "WPG"},
	})

	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "Connor Hellebuyck", recs[0].Name)
	assert.Equal(t, "Juuse Saros", recs[1].Name)
}

func TestEnsureSentinelsIdempotent(t *testing.T) {
	s := roster.NewStore()
	for i := 0; i < 3; i++ {
		s.EnsureSentinels()
	}

	avg, ok := s.Lookup(models.AverageGoalieName)
	require.True(t, ok)
	assert.Equal(t, 0.00, avg.Skill)

	backup, ok := s.Lookup(models.BackupRookieName)
	require.True(t, ok)
	assert.Equal(t, models.BackupRookieSkill, backup.Skill)

	assert.Equal(t, 2, s.Len())
}

func TestEnsureSentinelsDoesNotOverwrite(t *testing.T) {
	// A roster feed that happens to contain an entry with the sentinel name
	// keeps its original record.
	s := roster.FromRecords([]models.GoalieRecord{
		{Name: models.AverageGoalieName, Team: "BOS", Skill: 0.2},
	})
	s.EnsureSentinels()

	rec, ok := s.Lookup(models.AverageGoalieName)
	require.True(t, ok)
	assert.Equal(t, "BOS", rec.Team)
	assert.Equal(t, 0.2, rec.Skill)
}
