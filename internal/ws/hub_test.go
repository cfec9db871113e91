package ws

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNickname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vlad", "Vlad"},
		{"cool_guy-42", "cool_guy-42"},
		{"a", "Player"},
		{"", "Player"},
		{"<script>xx</script>", "scriptxxscri"},
		{"way too long nickname here", "way too long"},
		{"дворник", "Player"},
		{"ab!!", "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeNickname(tt.in), "input %q", tt.in)
	}
}

func TestParseRoomOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?difficulty=legend&scoring=league&clock=24&target=21&seed=99", nil)
	opts := parseRoomOptions(r)

	assert.Equal(t, "legend", opts.Difficulty)
	assert.Equal(t, "league", opts.Scoring)
	assert.Equal(t, 24.0, opts.ShotClockSeconds)
	assert.Equal(t, 21, opts.TargetScore)
	assert.Equal(t, int64(99), opts.Seed)
}

func TestParseRoomOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws", nil)
	opts := parseRoomOptions(r)

	assert.Empty(t, opts.Difficulty)
	assert.Equal(t, -1.0, opts.ShotClockSeconds, "missing clock defers to the creator")
	assert.Zero(t, opts.TargetScore)
	assert.Zero(t, opts.Seed)
}

func TestParseRoomOptionsUnlimitedClock(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?clock=0", nil)
	opts := parseRoomOptions(r)
	assert.Zero(t, opts.ShotClockSeconds, "explicit zero means no shot clock")
}

func TestParseRoomOptionsRejectsBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?clock=-5&target=nope&seed=xyz", nil)
	opts := parseRoomOptions(r)

	assert.Equal(t, -1.0, opts.ShotClockSeconds)
	assert.Zero(t, opts.TargetScore)
	assert.Zero(t, opts.Seed)
}
