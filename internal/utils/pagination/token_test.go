package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	journeyDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 14, 9, 30, 12, 345678000, time.UTC)

	token := EncodeToken(journeyDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, journeyDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = DecodeToken("aGVsbG8=") // decodes but has no separator
	assert.Error(t, err)
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	date := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token := EncodeDateBasedToken(date)
	got, err := DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}
