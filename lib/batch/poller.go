package batch

import (
	"time"

	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/lib/console"
	"github.com/cyverse-ops/atmoctl/models"
)

// Poller waits for launched instances to settle into the active state.
type Poller struct {
	Interval time.Duration
	Timeout  time.Duration
}

// WaitForActive polls instance status until it reaches active (status
// "active" with no activity), fails (status "error"/"deploy_error"), or the
// timeout elapses. The timeout clock is anchored at launched, not at the
// first poll, so instances queued behind a busy pool do not get extra time.
// Transient poll errors are no-op ticks; the clock keeps running through
// them. Returns success plus the last observed state.
func (p Poller) WaitForActive(c *atmo.Client, instance *models.Instance, launched time.Time) (bool, *models.Instance) {
	deadline := launched.Add(p.Timeout)
	last := instance
	lastStatus, lastActivity := instance.Status, instance.Activity

	console.Info("%s: status %q, activity %q", last.Name, lastStatus, lastActivity)

	for {
		if last.Active() {
			console.Success("%s: instance is active", last.Name)
			return true, last
		}
		if last.Failed() {
			console.ErrorPrint("%s: instance entered status %q", last.Name, last.Status)
			return false, last
		}
		if time.Now().After(deadline) {
			console.ErrorPrint("%s: timed out waiting for instance to become active", last.Name)
			return false, last
		}

		time.Sleep(p.Interval)

		current, err := c.GetInstance(instance.ID)
		if err != nil {
			console.Warning("%s: status poll failed: %v", instance.Name, err)
			continue
		}

		// Report on change only
		if current.Status != lastStatus || current.Activity != lastActivity {
			console.Info("%s: status %q, activity %q", current.Name, current.Status, current.Activity)
			lastStatus, lastActivity = current.Status, current.Activity
		}
		last = current
	}
}
