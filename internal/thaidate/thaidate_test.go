package thaidate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-05-01", NormalizeDate("2024-05-01T10:00:00Z"))
	assert.Equal(t, "2024-05-01", NormalizeDate("2024-05-01"))
	assert.Equal(t, "2024-05-01", NormalizeDate("2024/05/01"))
	assert.Equal(t, "2024-06-10", NormalizeDate(" 2024-06-10T00:00:00.000Z "))
	assert.Equal(t, "", NormalizeDate(""))
}

func TestFormat(t *testing.T) {
	d, err := Parse("2024-05-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "1 พฤษภาคม 2567", Long(d))
	assert.Equal(t, "1 พ.ค. 67", Short(d))

	dec := time.Date(2025, time.December, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "17 ธันวาคม 2568", Long(dec))
	assert.Equal(t, "17 ธ.ค. 68", Short(dec))

	y2k := time.Date(1957, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "5 ม.ค. 00", Short(y2k))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("next tuesday")
	assert.Error(t, err)
}
