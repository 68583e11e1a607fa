package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/grounddb/internal/domain"
)

func TestLoad_AllDomains(t *testing.T) {
	s, err := Load("testdata/db")
	require.NoError(t, err)

	assert.Equal(t, 3, s.Count(domain.Restaurant))
	assert.Equal(t, 2, s.Count(domain.Hotel))
	assert.Equal(t, 2, s.Count(domain.Attraction))
	assert.Equal(t, 3, s.Count(domain.Train))
	assert.Equal(t, 3, s.Count(domain.Hospital))
	assert.Equal(t, 1, s.Count(domain.Police))
}

func TestLoad_PreservesStorageOrder(t *testing.T) {
	s, err := Load("testdata/db")
	require.NoError(t, err)

	trains := s.Records(domain.Train)
	require.Len(t, trains, 3)
	assert.Equal(t, "TR7075", trains[0]["trainID"])
	assert.Equal(t, "TR2289", trains[1]["trainID"])
	assert.Equal(t, "TR9114", trains[2]["trainID"])
}

func TestLoad_TaxiOptions(t *testing.T) {
	s, err := Load("testdata/db")
	require.NoError(t, err)

	taxi := s.Taxi()
	assert.Equal(t, []string{"black", "white", "red", "yellow", "blue", "grey"}, taxi.Colors)
	assert.Equal(t, []string{"toyota", "skoda", "bmw", "honda", "ford", "audi"}, taxi.Types)

	// Taxi has option lists, not records.
	assert.Nil(t, s.Records(domain.Taxi))
}

func TestLoad_MissingFileFailsWholeLoad(t *testing.T) {
	dir := t.TempDir()
	// Copy everything except the train file.
	for _, d := range domain.All() {
		if d == domain.Train {
			continue
		}
		data, err := os.ReadFile(filepath.Join("testdata/db", DataFile(d)))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, DataFile(d)), data, 0o644))
	}

	s, err := Load(dir)
	require.Error(t, err)
	assert.Nil(t, s, "no partial store on load failure")
	assert.Contains(t, err.Error(), "train")
}

func TestLoad_MalformedFileFailsWholeLoad(t *testing.T) {
	s, err := Load("testdata/broken")
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "restaurant")
}

func TestNew_CopiesRecordMap(t *testing.T) {
	records := map[domain.Domain][]domain.Record{
		domain.Restaurant: {{"name": "curry garden"}},
	}
	s := New(records, domain.TaxiOptions{})

	records[domain.Restaurant] = nil
	assert.Len(t, s.Records(domain.Restaurant), 1)
}

func TestNew_ClonesRecords(t *testing.T) {
	rec := domain.Record{"name": "curry garden"}
	s := New(map[domain.Domain][]domain.Record{
		domain.Restaurant: {rec},
	}, domain.TaxiOptions{})

	// The caller keeps its record; the store holds an independent copy.
	rec["name"] = "mutated"
	assert.Equal(t, "curry garden", s.Records(domain.Restaurant)[0]["name"])
}

func TestCount_TaxiReportsColorOptions(t *testing.T) {
	s := New(nil, domain.TaxiOptions{Colors: []string{"black", "white"}, Types: []string{"bmw"}})
	assert.Equal(t, 2, s.Count(domain.Taxi))
}
