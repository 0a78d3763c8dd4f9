package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflotty/facultysnipe/goquery"
)

func TestContactClusterStrategy(t *testing.T) {
	t.Parallel()

	t.Run("requires at least three email links", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<li><h3>Jane Smith</h3><a href="mailto:jsmith@university.edu">Email</a></li>
<li><h3>John Doe</h3><a href="mailto:jdoe@university.edu">Email</a></li>
</body>`

		s := goquery.NewContactClusterStrategy()
		records, confidence, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 0, confidence)
	})

	t.Run("extracts one record per clustered email link", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li><h3>Jane Smith</h3><a href="mailto:jsmith@university.edu">Email</a></li>
<li><h3>John Doe</h3><a href="mailto:jdoe@university.edu">Email</a></li>
<li><h3>Maria Garcia</h3><a href="mailto:mgarcia@university.edu">Email</a></li>
</ul>`

		s := goquery.NewContactClusterStrategy()
		records, confidence, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "Jane Smith", records[0].Name)
		assert.Equal(t, "jsmith@university.edu", records[0].Email)
		assert.Equal(t, "Maria Garcia", records[2].Name)

		assert.Equal(t, 55, confidence)
	})

	t.Run("skips placeholder addresses", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li><h3>Jane Smith</h3><a href="mailto:jsmith@university.edu">Email</a></li>
<li><h3>Web Master</h3><a href="mailto:webmaster@university.edu">Email</a></li>
<li><h3>John Doe</h3><a href="mailto:jdoe@university.edu">Email</a></li>
<li><h3>Maria Garcia</h3><a href="mailto:mgarcia@university.edu">Email</a></li>
</ul>`

		s := goquery.NewContactClusterStrategy()
		records, _, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		require.Len(t, records, 3)
		for _, rec := range records {
			assert.NotEqual(t, "webmaster@university.edu", rec.Email)
		}
	})

	t.Run("strips query fragments from mailto addresses", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li><h3>Jane Smith</h3><a href="mailto:jsmith@university.edu?subject=Hello">Email</a></li>
<li><h3>John Doe</h3><a href="mailto:jdoe@university.edu">Email</a></li>
<li><h3>Maria Garcia</h3><a href="mailto:mgarcia@university.edu">Email</a></li>
</ul>`

		s := goquery.NewContactClusterStrategy()
		records, _, err := s.Extract(html, "https://university.edu")

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "jsmith@university.edu", records[0].Email)
	})
}
