package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflotty/facultysnipe"
	main "github.com/eflotty/facultysnipe/cmd/facultysnipe"
	"github.com/eflotty/facultysnipe/mock"
)

// testDeps returns Dependencies with buffers for output and the given
// services wired in.
func testDeps(targets *mock.TargetService, records *mock.RecordService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Targets: targets,
		Records: records,
	}
	return deps, stdout, stderr
}

func notFoundByID(_ context.Context, id string) (*facultysnipe.Target, error) {
	return nil, facultysnipe.Errorf(facultysnipe.ENOTFOUND, "target %q not found", id)
}

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates an enabled target", func(t *testing.T) {
		t.Parallel()

		var created *facultysnipe.Target
		targets := &mock.TargetService{
			CreateTargetFn: func(_ context.Context, target *facultysnipe.Target) error {
				target.ID = "t-1"
				created = target
				return nil
			},
		}
		deps, stdout, stderr := testDeps(targets, nil)

		cmd := &main.AddCmd{Name: "Biology Faculty", URL: "https://u.edu/biology/faculty"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Biology Faculty", created.DisplayName)
		assert.True(t, created.Enabled)
		assert.Contains(t, stdout.String(), "Added target")
		assert.Contains(t, stdout.String(), "t-1")
		assert.Empty(t, stderr.String())
	})

	t.Run("respects disabled flag and scraper override", func(t *testing.T) {
		t.Parallel()

		var created *facultysnipe.Target
		targets := &mock.TargetService{
			CreateTargetFn: func(_ context.Context, target *facultysnipe.Target) error {
				created = target
				return nil
			},
		}
		deps, stdout, _ := testDeps(targets, nil)

		cmd := &main.AddCmd{Name: "Physics", URL: "https://u.edu/physics", Disabled: true, Scraper: "legacy-table"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.False(t, created.Enabled)
		assert.Equal(t, "legacy-table", created.ScraperOverride)
		assert.Contains(t, stdout.String(), "disabled")
	})

	t.Run("surfaces create errors", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			CreateTargetFn: func(_ context.Context, _ *facultysnipe.Target) error {
				return facultysnipe.Errorf(facultysnipe.ECONFLICT, "target already exists")
			},
		}
		deps, stdout, stderr := testDeps(targets, nil)

		cmd := &main.AddCmd{Name: "Biology", URL: "https://u.edu/biology"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists targets with state and status", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			FindTargetsFn: func(_ context.Context, _ facultysnipe.TargetFilter) ([]*facultysnipe.Target, error) {
				return []*facultysnipe.Target{
					{ID: "t-1", DisplayName: "Biology", URL: "https://u.edu/biology", Enabled: true, LastStatus: facultysnipe.RunStatusSuccess},
					{ID: "t-2", DisplayName: "Physics", URL: "https://u.edu/physics", Enabled: false},
				}, nil
			},
		}
		deps, stdout, _ := testDeps(targets, nil)

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "t-1")
		assert.Contains(t, output, "SUCCESS")
		assert.Contains(t, output, "disabled")
		assert.Contains(t, output, "https://u.edu/physics")
	})

	t.Run("shows helpful message when no targets exist", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			FindTargetsFn: func(_ context.Context, _ facultysnipe.TargetFilter) ([]*facultysnipe.Target, error) {
				return nil, nil
			},
		}
		deps, stdout, _ := testDeps(targets, nil)

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No targets found")
	})
}

func TestEnableCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("resolves by display name when ID lookup misses", func(t *testing.T) {
		t.Parallel()

		var updatedID string
		var updated facultysnipe.TargetUpdate
		targets := &mock.TargetService{
			FindTargetByIDFn: notFoundByID,
			FindTargetsFn: func(_ context.Context, _ facultysnipe.TargetFilter) ([]*facultysnipe.Target, error) {
				return []*facultysnipe.Target{
					{ID: "t-1", DisplayName: "Biology", URL: "https://u.edu/biology"},
				}, nil
			},
			UpdateTargetFn: func(_ context.Context, id string, upd facultysnipe.TargetUpdate) (*facultysnipe.Target, error) {
				updatedID = id
				updated = upd
				return &facultysnipe.Target{ID: id}, nil
			},
		}
		deps, stdout, _ := testDeps(targets, nil)

		err := (&main.EnableCmd{Target: "Biology"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "t-1", updatedID)
		require.NotNil(t, updated.Enabled)
		assert.True(t, *updated.Enabled)
		assert.Contains(t, stdout.String(), "Enabled target")
	})

	t.Run("disable clears the enabled flag", func(t *testing.T) {
		t.Parallel()

		var updated facultysnipe.TargetUpdate
		targets := &mock.TargetService{
			FindTargetByIDFn: func(_ context.Context, id string) (*facultysnipe.Target, error) {
				return &facultysnipe.Target{ID: id, DisplayName: "Biology"}, nil
			},
			UpdateTargetFn: func(_ context.Context, id string, upd facultysnipe.TargetUpdate) (*facultysnipe.Target, error) {
				updated = upd
				return &facultysnipe.Target{ID: id}, nil
			},
		}
		deps, stdout, _ := testDeps(targets, nil)

		err := (&main.DisableCmd{Target: "t-1"}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, updated.Enabled)
		assert.False(t, *updated.Enabled)
		assert.Contains(t, stdout.String(), "Disabled target")
	})

	t.Run("returns not found for unknown reference", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			FindTargetByIDFn: notFoundByID,
			FindTargetsFn: func(_ context.Context, _ facultysnipe.TargetFilter) ([]*facultysnipe.Target, error) {
				return nil, nil
			},
		}
		deps, _, stderr := testDeps(targets, nil)

		err := (&main.EnableCmd{Target: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, facultysnipe.ENOTFOUND, facultysnipe.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		deleteCalled := false
		targets := &mock.TargetService{
			DeleteTargetFn: func(_ context.Context, _ string) error {
				deleteCalled = true
				return nil
			},
		}
		deps, _, stderr := testDeps(targets, nil)

		err := (&main.DeleteCmd{Target: "t-1"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, facultysnipe.EINVALID, facultysnipe.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
		assert.False(t, deleteCalled)
	})

	t.Run("deletes with force", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		targets := &mock.TargetService{
			FindTargetByIDFn: func(_ context.Context, id string) (*facultysnipe.Target, error) {
				return &facultysnipe.Target{ID: id, DisplayName: "Biology"}, nil
			},
			DeleteTargetFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}
		deps, stdout, _ := testDeps(targets, nil)

		err := (&main.DeleteCmd{Target: "t-1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "t-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted target")
	})
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("imports targets from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "targets.yaml")
		data := []byte(`
targets:
  - name: Biology Faculty
    url: https://u.edu/biology/faculty
  - name: Physics Faculty
    url: https://u.edu/physics/people
`)
		require.NoError(t, os.WriteFile(path, data, 0644))

		var created []string
		targets := &mock.TargetService{
			CreateTargetFn: func(_ context.Context, target *facultysnipe.Target) error {
				created = append(created, target.DisplayName)
				return nil
			},
		}
		deps, stdout, _ := testDeps(targets, nil)

		err := (&main.ImportCmd{Path: path}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"Biology Faculty", "Physics Faculty"}, created)
		assert.Contains(t, stdout.String(), "Imported 2 targets")
	})

	t.Run("reports how many were imported before a failure", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "targets.yaml")
		data := []byte(`
targets:
  - name: Biology Faculty
    url: https://u.edu/biology/faculty
  - name: Physics Faculty
    url: https://u.edu/physics/people
`)
		require.NoError(t, os.WriteFile(path, data, 0644))

		calls := 0
		targets := &mock.TargetService{
			CreateTargetFn: func(_ context.Context, _ *facultysnipe.Target) error {
				calls++
				if calls > 1 {
					return facultysnipe.Errorf(facultysnipe.ECONFLICT, "target already exists")
				}
				return nil
			},
		}
		deps, _, stderr := testDeps(targets, nil)

		err := (&main.ImportCmd{Path: path}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error after 1 imported")
	})
}

func TestRecordsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stored records sorted by name", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			FindTargetByIDFn: func(_ context.Context, id string) (*facultysnipe.Target, error) {
				return &facultysnipe.Target{ID: id, DisplayName: "Biology"}, nil
			},
		}
		records := &mock.RecordService{
			SnapshotFn: func(_ context.Context, targetID string) (map[string]facultysnipe.Record, error) {
				assert.Equal(t, "t-1", targetID)
				return map[string]facultysnipe.Record{
					"a": {Name: "Dr. Zoe Park", Title: "Professor", Email: "zpark@u.edu"},
					"b": {Name: "Dr. Ada Lin", Email: "alin@u.edu"},
				}, nil
			},
		}
		deps, stdout, _ := testDeps(targets, records)

		err := (&main.RecordsCmd{Target: "t-1"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Less(t, bytes.Index([]byte(output), []byte("Ada Lin")), bytes.Index([]byte(output), []byte("Zoe Park")))
		assert.Contains(t, output, "<zpark@u.edu>")
		assert.Contains(t, output, "2 records")
	})

	t.Run("emits JSON when requested", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			FindTargetByIDFn: func(_ context.Context, id string) (*facultysnipe.Target, error) {
				return &facultysnipe.Target{ID: id, DisplayName: "Biology"}, nil
			},
		}
		records := &mock.RecordService{
			SnapshotFn: func(_ context.Context, _ string) (map[string]facultysnipe.Record, error) {
				return map[string]facultysnipe.Record{
					"a": {Name: "Dr. Ada Lin", Email: "alin@u.edu"},
				}, nil
			},
		}
		deps, stdout, _ := testDeps(targets, records)

		err := (&main.RecordsCmd{Target: "t-1", JSON: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"name": "Dr. Ada Lin"`)
	})

	t.Run("explains empty snapshots", func(t *testing.T) {
		t.Parallel()

		targets := &mock.TargetService{
			FindTargetByIDFn: func(_ context.Context, id string) (*facultysnipe.Target, error) {
				return &facultysnipe.Target{ID: id, DisplayName: "Biology"}, nil
			},
		}
		records := &mock.RecordService{
			SnapshotFn: func(_ context.Context, _ string) (map[string]facultysnipe.Record, error) {
				return map[string]facultysnipe.Record{}, nil
			},
		}
		deps, stdout, _ := testDeps(targets, records)

		err := (&main.RecordsCmd{Target: "t-1"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No records stored")
	})
}
