package machines

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

// The features column is TEXT[] NOT NULL. A nil slice must never reach
// the driver: it encodes as SQL NULL and the insert fails.
func TestFeaturesParamNeverEncodesNull(t *testing.T) {
	tm := pgtype.NewMap()

	enc, err := tm.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, featuresParam(nil), nil)
	require.NoError(t, err)
	require.NotNil(t, enc)
	require.Equal(t, "{}", string(enc))

	enc, err = tm.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, featuresParam([]string{"camera"}), nil)
	require.NoError(t, err)
	require.NotNil(t, enc)

	// the defect: a machine created through the admin flow has no features
	enc, err = tm.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, Machine{}.Features, nil)
	require.NoError(t, err)
	require.Nil(t, enc, "nil slice encodes as SQL NULL without the guard")
}
