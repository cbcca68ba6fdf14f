package idx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackware/gatekeep/pkg/idx"
)

func TestNew(t *testing.T) {
	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.Len(t, a.String(), 26)
	require.NotEqual(t, a, b)
}

func TestParse(t *testing.T) {
	id := idx.New()

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = idx.Parse("definitely-not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)

	_, err = idx.Parse("")
	require.ErrorIs(t, err, idx.ErrInvalid)
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	id := idx.NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)
}

func TestOrdering(t *testing.T) {
	earlier := idx.NewAt(time.Now().Add(-time.Hour))
	later := idx.NewAt(time.Now())

	require.Less(t, earlier.String(), later.String())
}
