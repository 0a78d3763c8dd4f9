package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflotty/facultysnipe/goquery"
)

func TestTitleStrategy(t *testing.T) {
	t.Parallel()

	t.Run("extracts records from blocks holding academic titles", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<div><h3>Jane Smith</h3><p>Professor</p><a href="mailto:jsmith@university.edu">Email</a></div>
<div><h3>John Doe</h3><p>Associate Professor</p><a href="mailto:jdoe@university.edu">Email</a></div>
<div><h3>Maria Garcia</h3><p>Assistant Professor</p><a href="mailto:mgarcia@university.edu">Email</a></div>
</body>`

		s := goquery.NewTitleStrategy()
		records, confidence, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "Jane Smith", records[0].Name)
		assert.Equal(t, "jsmith@university.edu", records[0].Email)

		assert.Equal(t, 45, confidence)
	})

	t.Run("requires at least three title matches", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<div><h3>Jane Smith</h3><p>Professor</p><a href="mailto:jsmith@university.edu">Email</a></div>
</body>`

		s := goquery.NewTitleStrategy()
		records, confidence, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 0, confidence)
	})
}

func TestTextMineStrategy(t *testing.T) {
	t.Parallel()

	t.Run("pairs mined emails with nearby capitalized names", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<p>Contact Jane Smith at jsmith@university.edu for admissions.</p>
<p>Contact John Doe at jdoe@university.edu for curriculum questions.</p>
</body>`

		s := goquery.NewTextMineStrategy()
		records, confidence, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "jsmith@university.edu", records[0].Email)
		assert.Equal(t, "jdoe@university.edu", records[1].Email)

		assert.Equal(t, 26, confidence)
	})

	t.Run("drops emails without a name nearby", func(t *testing.T) {
		t.Parallel()

		html := `<body><p>write to info@university.edu</p></body>`

		s := goquery.NewTextMineStrategy()
		records, confidence, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 0, confidence)
	})
}
