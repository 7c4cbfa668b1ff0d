package batch

import (
	"errors"
	"testing"

	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchInstanceResolution(t *testing.T) {
	api := newFakeAPI(t)
	api.addAccount("u1", "p1")
	api.sizes = []models.Size{
		{ID: 1, Alias: "1", Name: "tiny1"},
		{ID: 2, Alias: "2", Name: "medium3"},
	}
	api.addImage(1552, "Ubuntu 18.04 Base", "2.0", "machine-1552-a", "machine-1552-b")

	client, err := atmo.Login(api.platform(), "u1", "p1")
	require.NoError(t, err)

	instance, err := LaunchInstance(client, LaunchSpec{
		Username:     "u1",
		ImageID:      1552,
		ImageVersion: "2.0",
		Size:         "tiny1",
	})
	require.NoError(t, err)

	require.Len(t, api.launched, 1)
	req := api.launched[0]
	assert.Equal(t, "machine-1552-a", req.SourceAlias, "first machine of the version")
	assert.Equal(t, "1", req.SizeAlias)
	assert.Equal(t, "alloc-u1", req.AllocationSourceID)
	assert.Equal(t, "project-u1", req.Project)
	assert.Equal(t, "identity-u1", req.Identity)
	assert.Equal(t, "Ubuntu 18.04 Base", req.Name, "defaults to the image name")
	assert.NotEmpty(t, instance.UUID)
}

func TestLaunchInstanceExplicitOverrides(t *testing.T) {
	api := newFakeAPI(t)
	api.addAccount("u1", "p1")
	api.sizes = []models.Size{{ID: 1, Alias: "1", Name: "tiny1"}}
	api.addImage(7, "Base", "1.0", "machine-7")
	api.projects["u1"] = append(api.projects["u1"], models.Project{ID: 9000, UUID: "project-research", Name: "research-proj"})
	api.allocs["u1"] = append(api.allocs["u1"], models.AllocationSource{ID: 9001, UUID: "alloc-shared", Name: "shared-alloc", ComputeAllowed: 500})

	client, err := atmo.Login(api.platform(), "u1", "p1")
	require.NoError(t, err)

	_, err = LaunchInstance(client, LaunchSpec{
		Username:         "u1",
		ImageID:          7,
		ImageVersion:     "1.0",
		Size:             "tiny1",
		Name:             "my instance",
		ProjectName:      "research-proj",
		AllocationSource: "shared-alloc",
	})
	require.NoError(t, err)

	require.Len(t, api.launched, 1)
	req := api.launched[0]
	assert.Equal(t, "my instance", req.Name)
	assert.Equal(t, "project-research", req.Project)
	assert.Equal(t, "alloc-shared", req.AllocationSourceID)
}

func TestLaunchInstanceDuplicateNamesFirstMatch(t *testing.T) {
	api := newFakeAPI(t)
	api.addAccount("u1", "p1")
	api.sizes = []models.Size{
		{ID: 1, Alias: "first-tiny", Name: "tiny1"},
		{ID: 2, Alias: "second-tiny", Name: "tiny1"},
	}
	api.addImage(7, "Base", "1.0", "machine-7")
	// A second allocation source with the same name as the first
	api.allocs["u1"] = append(api.allocs["u1"], models.AllocationSource{ID: 9001, UUID: "alloc-u1-dup", Name: "u1"})

	client, err := atmo.Login(api.platform(), "u1", "p1")
	require.NoError(t, err)

	_, err = LaunchInstance(client, LaunchSpec{Username: "u1", ImageID: 7, ImageVersion: "1.0", Size: "tiny1"})
	require.NoError(t, err)

	require.Len(t, api.launched, 1)
	assert.Equal(t, "first-tiny", api.launched[0].SizeAlias)
	assert.Equal(t, "alloc-u1", api.launched[0].AllocationSourceID)
}

func TestLaunchInstanceUnknownSize(t *testing.T) {
	api := newFakeAPI(t)
	api.addAccount("u1", "p1")
	api.sizes = []models.Size{{ID: 1, Alias: "1", Name: "tiny1"}}
	api.addImage(7, "Base", "1.0", "machine-7")

	client, err := atmo.Login(api.platform(), "u1", "p1")
	require.NoError(t, err)

	_, err = LaunchInstance(client, LaunchSpec{Username: "u1", ImageID: 7, ImageVersion: "1.0", Size: "giant9"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, atmo.ErrNotFound))
	assert.Empty(t, api.launched)
}

func TestLaunchInstanceUnknownVersion(t *testing.T) {
	api := newFakeAPI(t)
	api.addAccount("u1", "p1")
	api.sizes = []models.Size{{ID: 1, Alias: "1", Name: "tiny1"}}
	api.addImage(7, "Base", "1.0", "machine-7")

	client, err := atmo.Login(api.platform(), "u1", "p1")
	require.NoError(t, err)

	_, err = LaunchInstance(client, LaunchSpec{Username: "u1", ImageID: 7, ImageVersion: "9.9", Size: "tiny1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, atmo.ErrNotFound))
}
