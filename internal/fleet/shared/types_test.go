package shared_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfleet/internal/fleet/shared"
)

func TestNewRepositoryRef(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		refName      string
		refPath      string
		expectedName string
		expectError  bool
	}{
		{name: "explicit_name", refName: "service", refPath: "/repos/service-checkout", expectedName: "service"},
		{name: "name_defaults_to_base", refName: "", refPath: "/repos/service", expectedName: "service"},
		{name: "trims_whitespace", refName: "  api  ", refPath: "  /repos/api  ", expectedName: "api"},
		{name: "rejects_empty_path", refName: "service", refPath: "   ", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			reference, creationError := shared.NewRepositoryRef(testCase.refName, testCase.refPath)
			if testCase.expectError {
				require.ErrorIs(t, creationError, shared.ErrEmptyRepositoryPath)
				return
			}
			require.NoError(t, creationError)
			require.Equal(t, testCase.expectedName, reference.Name)
		})
	}
}

func TestRepositorySetDeduplicatesByPath(t *testing.T) {
	t.Parallel()

	first := shared.RepositoryRef{Name: "service", Path: "/repos/service"}
	duplicate := shared.RepositoryRef{Name: "service-copy", Path: "/repos/service"}
	second := shared.RepositoryRef{Name: "api", Path: "/repos/api"}

	set := shared.NewRepositorySet(first, duplicate, second)

	require.Equal(t, 2, set.Len())
	require.Equal(t, []string{"/repos/service", "/repos/api"}, set.Paths())
	require.True(t, set.Contains("/repos/api"))
	require.False(t, set.Contains("/repos/worker"))
}

func TestRepositorySetAppendPreservesOrder(t *testing.T) {
	t.Parallel()

	set := shared.NewRepositorySet(shared.RepositoryRef{Name: "a", Path: "/repos/a"})
	extended := set.Append(shared.RepositoryRef{Name: "b", Path: "/repos/b"})

	require.Equal(t, 1, set.Len())
	require.Equal(t, []string{"/repos/a", "/repos/b"}, extended.Paths())
}

func TestBranchMapSortedBranchNames(t *testing.T) {
	t.Parallel()

	branches := shared.BranchMap{
		"release": shared.NewRepositorySet(),
		"feature": shared.NewRepositorySet(),
		"master":  shared.NewRepositorySet(),
	}

	require.Equal(t, []string{"feature", "master", "release"}, branches.SortedBranchNames())
}

func TestOutcomeListCounts(t *testing.T) {
	t.Parallel()

	outcomes := shared.OutcomeList{
		{Repository: shared.RepositoryRef{Path: "/repos/a"}},
		{Repository: shared.RepositoryRef{Path: "/repos/b"}, Err: errors.New("diverged")},
		{Repository: shared.RepositoryRef{Path: "/repos/c"}},
	}

	require.Equal(t, 2, outcomes.SucceededCount())
	require.Equal(t, 1, outcomes.FailedCount())

	failures := outcomes.Failures()
	require.Len(t, failures, 1)
	require.Equal(t, "/repos/b", failures[0].Repository.Path)
}
