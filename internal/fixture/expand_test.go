package fixture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/asdf-fixtures/internal/domain"
)

func TestExpandVariants(t *testing.T) {
	for _, name := range numericTypes {
		t.Run(name, func(t *testing.T) {
			d, err := domain.Parse(name, domain.BigEndian)
			require.NoError(t, err)

			variants, err := Expand(name, d, domain.Boundaries, CharMarker)
			require.NoError(t, err)
			require.Len(t, variants, 2)

			little, big := variants[0], variants[1]
			require.Equal(t, name+"<", little.Name())
			require.Equal(t, name+">", big.Name())
			require.Equal(t, domain.LittleEndian, little.Domain().ByteOrder())
			require.Equal(t, domain.BigEndian, big.Domain().ByteOrder())
			require.Equal(t, d.WithByteOrder(domain.LittleEndian), little.Domain())

			lb, err := little.Bytes()
			require.NoError(t, err)
			bb, err := big.Bytes()
			require.NoError(t, err)

			// storage differs for multi-byte types, decoded values never do
			if d.Size() > 1 {
				require.NotEqual(t, lb, bb)
			}
			lv, err := domain.Decode(little.Domain(), lb)
			require.NoError(t, err)
			bv, err := domain.Decode(big.Domain(), bb)
			require.NoError(t, err)
			require.True(t, lv.Equal(bv), "little %v != big %v", lv, bv)
		})
	}
}

func TestExpandWordMarker(t *testing.T) {
	d := domain.MustNew(domain.KindUnsigned, 32, domain.LittleEndian)
	variants, err := Expand("uint32", d, domain.Ramp(8), WordMarker)
	require.NoError(t, err)
	require.Equal(t, "uint32-little", variants[0].Name())
	require.Equal(t, "uint32-big", variants[1].Name())
	require.Equal(t, []int{8}, variants[1].Shape())
}

func TestExpandProbeError(t *testing.T) {
	boom := errors.New("boom")
	d := domain.MustNew(domain.KindSigned, 16, domain.LittleEndian)
	_, err := Expand("x", d, func(domain.Domain) (domain.Values, error) { return nil, boom }, CharMarker)
	require.ErrorIs(t, err, boom)

	_, err = Expand("x", domain.Domain{}, domain.Boundaries, CharMarker)
	require.ErrorIs(t, err, domain.ErrUnsupportedDomain)
}
