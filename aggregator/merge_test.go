package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextJoin_Merge(t *testing.T) {
	s := NewTextJoin("\n")

	assert.Equal(t, "a\nb", s.Merge([]string{"a", "b"}))
	assert.Equal(t, "a\nb", s.Merge([]string{"a", "", "b"}))
	assert.Equal(t, "a", s.Merge([]string{"a"}))
	assert.Equal(t, "", s.Merge(nil))
}

func TestTextJoin_CustomSeparator(t *testing.T) {
	s := NewTextJoin(" | ")

	assert.Equal(t, "lights on | music playing", s.Merge([]string{"lights on", "music playing"}))
}

func TestJSONMerge_Merge(t *testing.T) {
	s := NewJSONMerge()

	merged := s.Merge([]string{
		`{"lights":"on","room":"kitchen"}`,
		`{"music":"jazz"}`,
	})

	assert.JSONEq(t, `{"lights":"on","room":"kitchen","music":"jazz"}`, merged)
}

func TestJSONMerge_LaterPayloadWins(t *testing.T) {
	s := NewJSONMerge()

	merged := s.Merge([]string{
		`{"room":"kitchen"}`,
		`{"room":"bedroom"}`,
	})

	assert.JSONEq(t, `{"room":"bedroom"}`, merged)
}

func TestJSONMerge_IgnoresNonObjects(t *testing.T) {
	s := NewJSONMerge()

	merged := s.Merge([]string{
		"plain text",
		`{"lights":"on"}`,
		`[1,2,3]`,
	})

	assert.JSONEq(t, `{"lights":"on"}`, merged)
}

func TestJSONMerge_FallsBackToTextJoin(t *testing.T) {
	s := NewJSONMerge()

	assert.Equal(t, "lights on\nmusic playing", s.Merge([]string{"lights on", "music playing"}))
}
