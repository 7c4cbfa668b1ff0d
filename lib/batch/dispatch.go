package batch

import (
	"sync"
	"time"

	"github.com/cyverse-ops/atmoctl/config"
	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/lib/console"
	"github.com/cyverse-ops/atmoctl/lib/util"
	"github.com/cyverse-ops/atmoctl/models"
	"github.com/vbauerster/mpb/v7"
)

// Outcome of one manifest row. Err is set when the row failed any phase;
// Instance is set once the row launched.
type LaunchResult struct {
	Row      LaunchRow
	Username string
	Instance *models.Instance
	Err      error
}

// Dispatcher runs authentication, launch, and active-wait across manifest
// rows using a bounded worker pool per phase. A row failure never aborts the
// other rows; failed rows are reported and dropped from later phases.
type Dispatcher struct {
	Platform config.Platform
	PoolSize int
	UseToken bool
	// Skip the active-wait phase when false (--dont-wait).
	Wait   bool
	Poller Poller
}

// A row that passed authentication, with the session owned exclusively by
// whichever worker is processing the row.
type authedRow struct {
	row      LaunchRow
	client   *atmo.Client
	username string
	instance *models.Instance
	// When the launch call returned. The active-wait deadline counts from
	// here, not from when a wait worker picks the row up.
	launched time.Time
}

// Run processes the whole manifest and returns one result per row, in
// completion order within each phase.
func (d Dispatcher) Run(rows []LaunchRow) []LaunchResult {
	var results []LaunchResult

	authed, authFailures := d.authenticate(rows)
	results = append(results, authFailures...)

	launched, launchFailures := d.launch(authed)
	results = append(results, launchFailures...)

	if d.Wait {
		results = append(results, d.waitActive(launched)...)
	} else {
		for _, r := range launched {
			results = append(results, LaunchResult{Row: r.row, Username: r.username, Instance: r.instance})
		}
	}

	return results
}

// Phase 1: resolve a session per row. Rows that fail to authenticate are
// returned as failed results and excluded from later phases.
func (d Dispatcher) authenticate(rows []LaunchRow) ([]authedRow, []LaunchResult) {
	var mu sync.Mutex
	var authed []authedRow
	var failures []LaunchResult

	d.forEach(len(rows), func(i int) {
		row := rows[i]
		client, username, err := d.authRow(row)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			console.ErrorPrint("row %d: %v", row.Index, err)
			failures = append(failures, LaunchResult{Row: row, Username: username, Err: err})
			return
		}
		authed = append(authed, authedRow{row: row, client: client, username: username})
	})

	return authed, failures
}

func (d Dispatcher) authRow(row LaunchRow) (*atmo.Client, string, error) {
	if d.UseToken {
		client := atmo.NewClient(d.Platform, row.Account.Token)
		// Whoami doubles as the fail-fast token check
		username, err := client.Username()
		if err != nil {
			return nil, "", err
		}
		return client, username, nil
	}

	client, err := atmo.Login(d.Platform, row.Account.Username, row.Account.Password)
	if err != nil {
		return nil, row.Account.Username, err
	}
	return client, row.Account.Username, nil
}

// Phase 2: launch one instance per authenticated row, collecting results as
// they complete.
func (d Dispatcher) launch(rows []authedRow) ([]authedRow, []LaunchResult) {
	if len(rows) == 0 {
		return nil, nil
	}

	progress := mpb.New(mpb.WithWidth(60))
	bar := util.NewProgressBar(progress, len(rows), "launch")

	var mu sync.Mutex
	var launched []authedRow
	var failures []LaunchResult

	d.forEach(len(rows), func(i int) {
		r := rows[i]
		instance, err := LaunchInstance(r.client, LaunchSpec{
			Username:         r.username,
			ImageID:          r.row.ImageID,
			ImageVersion:     r.row.ImageVersion,
			Size:             r.row.Size,
			Name:             r.row.InstanceName,
			ProjectName:      r.row.ProjectName,
			AllocationSource: r.row.AllocationSource,
		})
		bar.Increment()

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			console.ErrorPrint("row %d (%s): %v", r.row.Index, r.username, err)
			failures = append(failures, LaunchResult{Row: r.row, Username: r.username, Err: err})
			return
		}
		console.Info("row %d (%s): launched instance %q (%s)", r.row.Index, r.username, instance.Name, instance.UUID)
		r.instance = instance
		r.launched = time.Now()
		launched = append(launched, r)
	})

	progress.Wait()
	return launched, failures
}

// Phase 3: wait for each launched instance to become active, in a second
// pool of the same size.
func (d Dispatcher) waitActive(rows []authedRow) []LaunchResult {
	if len(rows) == 0 {
		return nil
	}

	progress := mpb.New(mpb.WithWidth(60))
	bar := util.NewProgressBar(progress, len(rows), "active")

	var mu sync.Mutex
	var results []LaunchResult

	d.forEach(len(rows), func(i int) {
		r := rows[i]
		ok, last := d.Poller.WaitForActive(r.client, r.instance, r.launched)
		bar.Increment()

		result := LaunchResult{Row: r.row, Username: r.username, Instance: last}
		if !ok {
			result.Err = console.Error("instance %q did not become active (last status %q)", last.Name, last.Status)
		}

		mu.Lock()
		results = append(results, result)
		mu.Unlock()
	})

	progress.Wait()
	return results
}

// forEach runs fn for indexes 0..n-1 on the dispatcher's worker pool.
func (d Dispatcher) forEach(n int, fn func(i int)) {
	size := d.PoolSize
	if size < 1 {
		size = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < size; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
