package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDRoundTrip(t *testing.T) {
	require.NoError(t, InitSqidsEncoderWithSeed("test-seed"))

	id, err := GeneratePublicID(42, EntityTypeUpload)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(id), 6)

	dbID, err := DecodePublicID(id, EntityTypeUpload)
	require.NoError(t, err)
	assert.Equal(t, uint(42), dbID)
}

func TestDecodePublicIDRejectsOtherEntity(t *testing.T) {
	require.NoError(t, InitSqidsEncoderWithSeed("test-seed"))

	id, err := GeneratePublicID(7, EntityTypeAdminUser)
	require.NoError(t, err)

	_, err = DecodePublicID(id, EntityTypeUpload)
	assert.Error(t, err)
}

func TestSeedChangesAlphabet(t *testing.T) {
	require.NoError(t, InitSqidsEncoderWithSeed("seed-a"))
	a, err := GeneratePublicID(1, EntityTypeUpload)
	require.NoError(t, err)

	require.NoError(t, InitSqidsEncoderWithSeed("seed-b"))
	b, err := GeneratePublicID(1, EntityTypeUpload)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, shuffleAlphabet("seed-a"), shuffleAlphabet("seed-a"))
}

func TestDecodePublicIDInvalid(t *testing.T) {
	require.NoError(t, InitSqidsEncoderWithSeed(""))

	_, err := DecodePublicID("!!!", EntityTypeUpload)
	assert.Error(t, err)
}
