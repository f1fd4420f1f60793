package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, entries ...Entry) Survey {
	t.Helper()
	s, err := New(entries...)
	require.NoError(t, err)
	return s
}

func TestWithEntryDoesNotMutateReceiver(t *testing.T) {
	base := mustNew(t,
		Entry{Group: "Percidae", Specie: "Perca fluviatilis", Count: 7},
	)

	added, err := base.WithEntry(Entry{Group: "Esocidae", Specie: "Esox lucius", Count: 2})
	require.NoError(t, err)
	updated, err := added.WithEntry(Entry{Group: "Percidae", Specie: "Perca fluviatilis", Count: 9})
	require.NoError(t, err)

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, added.Len())
	assert.Equal(t, 7.0, added.Table()["Perca fluviatilis"])
	assert.Equal(t, 9.0, updated.Table()["Perca fluviatilis"])
	assert.Equal(t, "Perca fluviatilis", updated.Entries()[0].Specie, "update keeps position")
}

func TestWithEntryRejectsBadRecords(t *testing.T) {
	var s Survey

	_, err := s.WithEntry(Entry{Specie: "  ", Count: 1})
	assert.ErrorIs(t, err, ErrInvalidRow)

	_, err = s.WithEntry(Entry{Specie: "Esox lucius", Count: -1})
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Contains(t, rowErr.Reason, "negative")
}

func TestWithoutSpecies(t *testing.T) {
	s := mustNew(t,
		Entry{Group: "A", Specie: "x", Count: 1},
		Entry{Group: "B", Specie: "y", Count: 2},
	)

	out := s.WithoutSpecies("x")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, []string{"B"}, out.Groups())
	assert.NotContains(t, out.Assignment(), "x")

	assert.Equal(t, out, out.WithoutSpecies("missing"))
}

func TestFilterIsDisplayOnly(t *testing.T) {
	s := mustNew(t,
		Entry{Group: "Percidae", Specie: "Perca fluviatilis", Count: 7},
		Entry{Group: "Esocidae", Specie: "Esox lucius", Count: 2},
		Entry{Group: "Percidae", Specie: "Sander lucioperca", Count: 1},
	)

	assert.Len(t, s.Filter(), 3)

	percids := s.Filter("Percidae")
	require.Len(t, percids, 2)
	assert.Equal(t, "Perca fluviatilis", percids[0].Specie)
	assert.Equal(t, "Sander lucioperca", percids[1].Specie)

	assert.Empty(t, s.Filter("Salmonidae"))
	assert.Len(t, s.Table(), 3)
}

func TestGroupsSortedAndDistinct(t *testing.T) {
	s := mustNew(t,
		Entry{Group: "Percidae", Specie: "a", Count: 1},
		Entry{Group: "Cyprinidae", Specie: "b", Count: 1},
		Entry{Group: "Percidae", Specie: "c", Count: 1},
		Entry{Specie: "d", Count: 1},
	)
	assert.Equal(t, []string{"Cyprinidae", "Percidae"}, s.Groups())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Esox lucius", Normalize("\ufeff  Esox lucius "))
	// full-width letters fold to ASCII under NFKC
	assert.Equal(t, "Esox", Normalize("Ｅｓｏｘ"))
}
