package sqlset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherDomain(t *testing.T) *feature.Domain {
	t.Helper()
	d, err := feature.NewDomain(
		map[string]string{"Weather": "Sunny,Rainy", "Temp": "Hot,Cold"},
		map[string]int{"Weather": 0, "Temp": 1},
	)
	require.NoError(t, err)
	return d
}

func weatherTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.FromExamples(
		dataset.Example{Record: []string{"Sunny", "Hot"}, Label: "No"},
		dataset.Example{Record: []string{"Sunny", "Cold"}, Label: "No"},
		dataset.Example{Record: []string{"Rainy", "Hot"}, Label: "Yes"},
	)
	require.NoError(t, err)
	return table
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, PostgreSQL, DriverFor("postgres://localhost/id3"))
	assert.Equal(t, PostgreSQL, DriverFor("postgresql://localhost/id3"))
	assert.Equal(t, SQLite3, DriverFor("weather.db"))
}

func TestQuote(t *testing.T) {
	q, err := quote("play")
	require.NoError(t, err)
	assert.Equal(t, `"play"`, q)

	_, err = quote("")
	assert.Error(t, err)
	_, err = quote(`a"; DROP TABLE x; --`)
	assert.Error(t, err)
}

func testStoreAndLoad(t *testing.T, source string) {
	ctx := context.Background()
	d := weatherDomain(t)

	s, err := Open(ctx, source, 1)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Store(ctx, "weather", d, "play", weatherTable(t)))
	loaded, err := s.Load(ctx, "weather", d, "play")
	require.NoError(t, err)

	// rows come back ordered by feature columns
	want := []dataset.Example{
		{Record: []string{"Rainy", "Hot"}, Label: "Yes"},
		{Record: []string{"Sunny", "Cold"}, Label: "No"},
		{Record: []string{"Sunny", "Hot"}, Label: "No"},
	}
	if diff := cmp.Diff(want, loaded.Examples()); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}

	other, err := feature.NewDomain(
		map[string]string{"Weather": "Sunny,Foggy", "Temp": "Hot,Cold"},
		map[string]int{"Weather": 0, "Temp": 1},
	)
	require.NoError(t, err)
	_, err = s.Load(ctx, "weather", other, "play")
	assert.ErrorIs(t, err, feature.ErrUnknownValue)

	_, err = s.Load(ctx, "missing", d, "play")
	assert.Error(t, err)
}

func TestSQLite3(t *testing.T) {
	testStoreAndLoad(t, filepath.Join(t.TempDir(), "weather.db"))
}

func TestPostgreSQL(t *testing.T) {
	url := os.Getenv("ID3_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("ID3_TEST_POSTGRES_URL not set")
	}
	s, err := Open(context.Background(), url, 1)
	require.NoError(t, err)
	_, err = s.db.Exec(`DROP TABLE IF EXISTS "weather"`)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	testStoreAndLoad(t, url)
}
