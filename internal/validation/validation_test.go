package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RouqX7/AthleteConnect/internal/models"
)

func TestStructReportsEveryViolation(t *testing.T) {
	v := New()

	post := models.Post{
		ID:         "p1",
		AuthorType: "coach", // not a declared variant
		Likes:      -1,
	}

	violations := v.Struct(post)
	require.NotEmpty(t, violations)

	fields := map[string]bool{}
	for _, violation := range violations {
		fields[violation.Field] = true
	}
	assert.True(t, fields["authorId"], "missing authorId should be reported")
	assert.True(t, fields["authorType"], "bad authorType should be reported")
	assert.True(t, fields["content"], "missing content should be reported")
	assert.True(t, fields["likes"], "negative likes should be reported")
}

func TestStructUsesWireFieldNames(t *testing.T) {
	v := New()

	violations := v.Struct(models.Post{})
	require.NotEmpty(t, violations)
	for _, violation := range violations {
		assert.NotContains(t, violation.Field, "ID", "violations should use json names, got %q", violation.Field)
	}
}

func TestStructValidRecord(t *testing.T) {
	v := New()

	post := models.Post{
		ID:         "p1",
		AuthorID:   "u1",
		AuthorType: models.AuthorTypePlayer,
		Content:    "hello",
	}
	assert.Empty(t, v.Struct(post))
}

func TestAggregateJoinsMessages(t *testing.T) {
	msg := Aggregate([]Violation{
		{Message: "first"},
		{Message: "second"},
	})
	assert.Equal(t, "first; second", msg)
}

func TestProfileVariantPlayerRejectsClubPayload(t *testing.T) {
	v := New()

	profile := models.DefaultProfile("a@b.com", "u1", "alice", "Alice", "A", models.ProfileTypePlayer, time.Now())
	profile.Club = &models.ClubProfile{Name: "FC"}

	violations := v.Struct(profile)
	require.NotEmpty(t, violations)

	found := false
	for _, violation := range violations {
		if violation.Rule == "excluded_for_player" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestProfileVariantDefaultsAreValid(t *testing.T) {
	v := New()

	player := models.DefaultProfile("a@b.com", "u1", "alice", "Alice", "A", models.ProfileTypePlayer, time.Now())
	assert.Empty(t, v.Struct(player))

	club := models.DefaultProfile("c@d.com", "u2", "fc", "Club", "FC", models.ProfileTypeClub, time.Now())
	assert.Empty(t, v.Struct(club))
}

func TestStripUnknownDropsForeignKeysAndID(t *testing.T) {
	in := map[string]any{
		"id":      "client-supplied",
		"content": "hello",
		"likes":   3,
		"bogus":   true,
	}

	out := StripUnknown[models.Post](in)

	assert.Equal(t, map[string]any{"content": "hello", "likes": 3}, out)
}

func TestStripUnknownEmptyInput(t *testing.T) {
	assert.Empty(t, StripUnknown[models.Post](map[string]any{"nothing": 1}))
}
