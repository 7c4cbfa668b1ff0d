package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/lib/console"
	"github.com/cyverse-ops/atmoctl/lib/httpvalidation"
	"github.com/cyverse-ops/atmoctl/models"
)

// Cleaner wipes every resource owned by an account: external links, volumes,
// instances, and all projects except a single default project named after
// the username (created if missing).
type Cleaner struct {
	DetachPollInterval time.Duration
	// Upper bound on the per-volume detach wait. Detachment that takes
	// longer fails the account's cleanup instead of hanging.
	DetachTimeout time.Duration
}

// CleanupAccount removes the account's resources in dependency order.
// Returns on the first failure; callers abort the whole run on error.
func (cl Cleaner) CleanupAccount(c *atmo.Client, username string) error {
	console.Info("cleaning up account %q", username)

	// External links
	links, err := c.ListLinks()
	if err != nil {
		return fmt.Errorf("failed to list links: %w", err)
	}
	for _, link := range links {
		if err := c.DeleteLink(link.ID); err != nil {
			return fmt.Errorf("failed to delete link %q: %w", link.Title, err)
		}
		console.Info("deleted link %q", link.Title)
	}

	// Detach volumes so they can be deleted after the instances
	volumes, err := c.ListVolumes()
	if err != nil {
		return fmt.Errorf("failed to list volumes: %w", err)
	}
	for _, volume := range volumes {
		if volume.Status == models.VolumeStatusNotAttached {
			continue
		}
		if err := c.DetachVolume(volume); err != nil {
			return fmt.Errorf("failed to detach volume %q: %w", volume.Name, err)
		}
	}
	for _, volume := range volumes {
		if volume.Status == models.VolumeStatusNotAttached {
			continue
		}
		if err := cl.waitDetached(c, volume); err != nil {
			return err
		}
	}

	// Instances
	instances, err := c.ListInstances()
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}
	for _, instance := range instances {
		err := c.DeleteInstance(instance)
		if errors.Is(err, httpvalidation.ErrConflict) {
			// A stuck instance can refuse deletion until rebooted
			console.Warning("instance %q refused deletion, rebooting first", instance.Name)
			if err = c.RebootInstance(instance, true); err != nil {
				return fmt.Errorf("failed to reboot instance %q: %w", instance.Name, err)
			}
			err = c.DeleteInstance(instance)
		}
		if err != nil {
			return fmt.Errorf("failed to delete instance %q: %w", instance.Name, err)
		}
		console.Info("deleted instance %q (%s)", instance.Name, instance.UUID)
	}

	// Now-detached volumes
	for _, volume := range volumes {
		if err := c.DeleteVolume(volume); err != nil {
			return fmt.Errorf("failed to delete volume %q: %w", volume.Name, err)
		}
		console.Info("deleted volume %q (%s)", volume.Name, volume.UUID)
	}

	// Projects: keep or create one default project named after the
	// username, delete everything else
	projects, err := c.ListProjects()
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	defaultFound := false
	for _, project := range projects {
		if project.Name == username && !defaultFound {
			defaultFound = true
			continue
		}
		if err := c.DeleteProject(project.ID); err != nil {
			return fmt.Errorf("failed to delete project %q: %w", project.Name, err)
		}
		console.Info("deleted project %q", project.Name)
	}
	if !defaultFound {
		if _, err := c.CreateProject(username, username); err != nil {
			return err
		}
		console.Info("created default project %q", username)
	}

	console.Success("account %q cleaned up", username)
	return nil
}

// waitDetached polls a volume until it reports "not attached" or the detach
// timeout elapses.
func (cl Cleaner) waitDetached(c *atmo.Client, volume models.Volume) error {
	deadline := time.Now().Add(cl.DetachTimeout)

	for {
		current, err := c.GetVolume(volume.ID)
		if err == nil && current.Status == models.VolumeStatusNotAttached {
			console.Info("volume %q detached", volume.Name)
			return nil
		}
		if err != nil {
			console.Warning("volume %q: detach poll failed: %v", volume.Name, err)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for volume %q to detach", volume.Name)
		}
		time.Sleep(cl.DetachPollInterval)
	}
}
