package atmo

import (
	"fmt"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
	"github.com/samber/lo"
)

func (c *Client) ListProjects() ([]models.Project, error) {
	return listResources[models.Project](c, c.url(constants.APIV2Path+"/projects"))
}

// FindProject returns the first project with the given name in response
// order. Duplicate names are not an error.
func (c *Client) FindProject(name string) (*models.Project, error) {
	projects, err := c.ListProjects()
	if err != nil {
		return nil, err
	}

	project, ok := lo.Find(projects, func(p models.Project) bool {
		return p.Name == name
	})
	if !ok {
		return nil, fmt.Errorf("%w: no project with the name of %q", ErrNotFound, name)
	}

	return &project, nil
}

func (c *Client) CreateProject(name string, owner string) (*models.Project, error) {
	req := models.ProjectCreateRequest{Name: name, Description: name, Owner: owner}

	var project models.Project
	if err := c.postJSON(c.url(constants.APIV2Path+"/projects"), req, &project); err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", name, err)
	}
	return &project, nil
}

func (c *Client) DeleteProject(id int) error {
	return c.delete(c.urlf(constants.APIV2Path+"/projects/%d", id))
}
