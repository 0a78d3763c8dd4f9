package scrape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflotty/facultysnipe"
	"github.com/eflotty/facultysnipe/scrape"
)

func TestMerger(t *testing.T) {
	t.Parallel()

	t.Run("keeps distinct records separate", func(t *testing.T) {
		t.Parallel()

		m := scrape.NewMerger()
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu"},
			{Name: "John Doe", Email: "jdoe@university.edu"},
		}, 60)

		records := m.Records()
		require.Len(t, records, 2)
		assert.Equal(t, "Jane Smith", records[0].Name)
		assert.Equal(t, "John Doe", records[1].Name)
	})

	t.Run("contact fields keep the first non-empty value", func(t *testing.T) {
		t.Parallel()

		m := scrape.NewMerger()
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", Phone: "555-123-4567"},
		}, 60)
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", Phone: "555-999-9999", ProfileURL: "https://u.edu/jsmith"},
		}, 40)

		records := m.Records()
		require.Len(t, records, 1)
		assert.Equal(t, "555-123-4567", records[0].Phone)
		assert.Equal(t, "https://u.edu/jsmith", records[0].ProfileURL)
	})

	t.Run("descriptive fields prefer the longer value", func(t *testing.T) {
		t.Parallel()

		m := scrape.NewMerger()
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", Department: "Biology"},
		}, 60)
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", Department: "Department of Biology"},
		}, 40)

		records := m.Records()
		require.Len(t, records, 1)
		assert.Equal(t, "Department of Biology", records[0].Department)
	})

	t.Run("descriptive field ties keep the existing value", func(t *testing.T) {
		t.Parallel()

		m := scrape.NewMerger()
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", Department: "Biology"},
		}, 60)
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", Department: "Physics"},
		}, 40)

		records := m.Records()
		require.Len(t, records, 1)
		assert.Equal(t, "Biology", records[0].Department)
	})

	t.Run("raw data is a key union with later values winning", func(t *testing.T) {
		t.Parallel()

		m := scrape.NewMerger()
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", RawData: map[string]string{"strategy": "container", "container": "card"}},
		}, 60)
		m.Add([]facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", RawData: map[string]string{"strategy": "table"}},
		}, 40)

		records := m.Records()
		require.Len(t, records, 1)
		assert.Equal(t, "table", records[0].RawData["strategy"])
		assert.Equal(t, "card", records[0].RawData["container"])
	})

	t.Run("merging is idempotent", func(t *testing.T) {
		t.Parallel()

		batch := []facultysnipe.Record{
			{Name: "Jane Smith", Email: "jsmith@university.edu", Title: "Professor", Department: "Biology"},
		}

		m := scrape.NewMerger()
		m.Add(batch, 60)
		once := m.Records()

		m.Add(batch, 60)
		m.Add(batch, 60)
		twice := m.Records()

		assert.Equal(t, once, twice)
	})

	t.Run("drops invalid candidates", func(t *testing.T) {
		t.Parallel()

		m := scrape.NewMerger()
		m.Add([]facultysnipe.Record{
			{Name: "X"},
			{Name: "No Contact Person"},
			{Name: "Jane Smith", Email: "jsmith@university.edu"},
		}, 60)

		assert.Equal(t, 1, m.Len())
	})

	t.Run("tracks the best confidence per record", func(t *testing.T) {
		t.Parallel()

		rec := facultysnipe.Record{Name: "Jane Smith", Email: "jsmith@university.edu"}

		m := scrape.NewMerger()
		m.Add([]facultysnipe.Record{rec}, 40)
		m.Add([]facultysnipe.Record{rec}, 85)
		m.Add([]facultysnipe.Record{rec}, 60)

		assert.Equal(t, 85, m.Confidence(rec.ID()))
	})
}
