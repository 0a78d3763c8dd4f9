package facultysnipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflotty/facultysnipe"
)

func TestRecordID(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic over name, email, and title", func(t *testing.T) {
		t.Parallel()

		a := facultysnipe.Record{Name: "Dr. Ada Lin", Email: "alin@u.edu", Title: "Professor"}
		b := facultysnipe.Record{Name: "Dr. Ada Lin", Email: "alin@u.edu", Title: "Professor", Phone: "555-0101"}

		assert.Equal(t, a.ID(), b.ID())
		assert.Len(t, a.ID(), 16)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		t.Parallel()

		a := facultysnipe.Record{Name: "Dr. Ada Lin", Email: "alin@u.edu", Title: "Professor"}
		b := facultysnipe.Record{Name: "  dr. ada lin ", Email: "ALIN@U.EDU", Title: "professor "}

		assert.Equal(t, a.ID(), b.ID())
	})

	t.Run("differs when an identity field differs", func(t *testing.T) {
		t.Parallel()

		a := facultysnipe.Record{Name: "Dr. Ada Lin", Email: "alin@u.edu", Title: "Professor"}
		b := facultysnipe.Record{Name: "Dr. Ada Lin", Email: "alin@u.edu", Title: "Associate Professor"}

		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a record with name and any contact field", func(t *testing.T) {
		t.Parallel()

		assert.True(t, (&facultysnipe.Record{Name: "Dr. Ada Lin", Email: "alin@u.edu"}).Valid())
		assert.True(t, (&facultysnipe.Record{Name: "Dr. Ada Lin", ProfileURL: "https://u.edu/~alin"}).Valid())
		assert.True(t, (&facultysnipe.Record{Name: "Dr. Ada Lin", Phone: "555-0101"}).Valid())
	})

	t.Run("rejects a short or whitespace name", func(t *testing.T) {
		t.Parallel()

		err := (&facultysnipe.Record{Name: " a ", Email: "a@u.edu"}).Validate()

		require.Error(t, err)
		assert.Equal(t, facultysnipe.EINVALID, facultysnipe.ErrorCode(err))
	})

	t.Run("rejects a record with no contact info", func(t *testing.T) {
		t.Parallel()

		err := (&facultysnipe.Record{Name: "Dr. Ada Lin", Department: "Biology"}).Validate()

		require.Error(t, err)
		assert.Equal(t, facultysnipe.EINVALID, facultysnipe.ErrorCode(err))
	})
}
