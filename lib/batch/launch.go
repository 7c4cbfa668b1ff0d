package batch

import (
	"encoding/json"
	"fmt"

	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/lib/console"
	"github.com/cyverse-ops/atmoctl/models"
)

// Fully parsed launch parameters for one account. Optional fields fall back
// to account defaults during resolution.
type LaunchSpec struct {
	// Username the account-scoped lookups (project, identity, allocation
	// source) default to.
	Username     string
	ImageID      int
	ImageVersion string
	Size         string
	// Instance display name. Defaults to the image name.
	Name string
	// Project to launch under. Defaults to the username.
	ProjectName string
	// Allocation source to draw from. Defaults to the username.
	AllocationSource string
}

// LaunchInstance resolves every reference in spec against freshly fetched
// catalogs and issues the create call. Each lookup takes the first
// name-match in API response order; a miss on any of them fails the launch.
func LaunchInstance(c *atmo.Client, spec LaunchSpec) (*models.Instance, error) {
	size, err := c.FindSize(spec.Size)
	if err != nil {
		return nil, err
	}

	allocationName := spec.AllocationSource
	if allocationName == "" {
		allocationName = spec.Username
	}
	allocation, err := c.FindAllocationSource(allocationName)
	if err != nil {
		return nil, err
	}

	projectName := spec.ProjectName
	if projectName == "" {
		projectName = spec.Username
	}
	project, err := c.FindProject(projectName)
	if err != nil {
		return nil, err
	}

	identity, err := c.FindIdentity(spec.Username)
	if err != nil {
		return nil, err
	}

	image, err := c.GetImage(spec.ImageID)
	if err != nil {
		return nil, err
	}
	version, err := atmo.FindImageVersion(*image, spec.ImageVersion)
	if err != nil {
		return nil, err
	}
	machines, err := c.ListVersionMachines(*version)
	if err != nil {
		return nil, err
	}
	if len(machines) == 0 {
		return nil, fmt.Errorf("%w: no machines for version %q of image %q", atmo.ErrNotFound, version.Name, image.Name)
	}

	name := spec.Name
	if name == "" {
		name = image.Name
	}

	instance, err := c.LaunchInstance(models.InstanceCreateRequest{
		Name:               name,
		SourceAlias:        machines[0].UUID,
		SizeAlias:          size.Alias,
		AllocationSourceID: allocation.UUID,
		Project:            project.UUID,
		Identity:           identity.UUID,
		Scripts:            []string{},
	})
	if err != nil {
		return nil, err
	}

	if pretty, err := json.MarshalIndent(instance, "", "  "); err == nil {
		console.Verbose(string(pretty))
	}

	return instance, nil
}
