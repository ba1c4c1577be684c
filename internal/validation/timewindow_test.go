package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	window, err := ParseWindow("01/26/2021 13:00:00", "01/27/2021 09:30:15")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2021, time.January, 26, 13, 0, 0, 0, time.Local), window.Start)
	assert.Equal(t, time.Date(2021, time.January, 27, 9, 30, 15, 0, time.Local), window.End)
}

func TestParseWindowMissingBound(t *testing.T) {
	_, err := ParseWindow("", "01/27/2021 09:30:15")
	require.Error(t, err)
	assert.Equal(t, "start or end cannot be null.", err.Error())

	_, err = ParseWindow("01/26/2021 13:00:00", "")
	assert.ErrorIs(t, err, ErrWindowBoundMissing)
}

func TestParseWindowMalformed(t *testing.T) {
	_, err := ParseWindow("2021-01-26", "01/27/2021 09:30:15")
	require.Error(t, err)
	assert.Equal(t, "access window value is malformed.", err.Error())

	_, err = ParseWindow("xx/26/2021 13:00:00", "01/27/2021 09:30:15")
	require.Error(t, err)
}

func TestWindowContainsIsStrict(t *testing.T) {
	window := Window{
		Start: time.Date(2021, time.January, 26, 13, 0, 0, 0, time.Local),
		End:   time.Date(2021, time.January, 27, 13, 0, 0, 0, time.Local),
	}

	assert.True(t, window.Contains(time.Date(2021, time.January, 26, 18, 0, 0, 0, time.Local)))
	assert.False(t, window.Contains(window.Start), "boundary instants are outside")
	assert.False(t, window.Contains(window.End))
	assert.False(t, window.Contains(window.Start.Add(-time.Minute)))
}
