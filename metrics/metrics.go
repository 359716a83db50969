package metrics

import (
	"bytes"
	"dashkit/utils"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Collector aggregates dataset run statistics per tenant and periodically
// writes an activity report to the log. Counters reset after every report.
type Collector struct {
	sync.Mutex
	tenantRuns map[uint]*aggregatedRuns
}

func NewCollector() *Collector {
	return &Collector{
		tenantRuns: map[uint]*aggregatedRuns{},
	}
}

// aggregatedRuns holds the aggregated run metrics for one tenant.
type aggregatedRuns struct {
	Datasets map[string]*DatasetRuns
}

// DatasetRuns holds all the metrics related to one dataset.
type DatasetRuns struct {
	Name          string        `json:"name"`
	Count         int           `json:"count"`
	Failures      int           `json:"failures"`
	TotalDuration time.Duration `json:"totalDurationNs"`
}

// ObserveRun records one run of the given dataset.
func (c *Collector) ObserveRun(tenantID uint, dataset string, duration time.Duration, err error) {
	c.Lock()
	defer c.Unlock()
	runs, ok := c.tenantRuns[tenantID]
	if !ok {
		runs = &aggregatedRuns{
			Datasets: map[string]*DatasetRuns{},
		}
		c.tenantRuns[tenantID] = runs
	}
	stats, ok := runs.Datasets[dataset]
	if !ok {
		stats = &DatasetRuns{
			Name: dataset,
		}
		runs.Datasets[dataset] = stats
	}
	stats.Count++
	stats.TotalDuration += duration
	if err != nil {
		stats.Failures++
	}
}

// Snapshot returns the current counters keyed by tenant, datasets sorted by
// name so output is stable.
func (c *Collector) Snapshot() map[uint][]DatasetRuns {
	c.Lock()
	defer c.Unlock()
	out := map[uint][]DatasetRuns{}
	for tenantID, runs := range c.tenantRuns {
		datasets := make([]DatasetRuns, 0, len(runs.Datasets))
		for _, stats := range runs.Datasets {
			datasets = append(datasets, *stats)
		}
		sort.Slice(datasets, func(i, j int) bool {
			return datasets[i].Name < datasets[j].Name
		})
		out[tenantID] = datasets
	}
	return out
}

// Start logs the activity report on the given interval and resets the
// counters. Meant to run as a goroutine for the process lifetime.
func (c *Collector) Start(interval time.Duration) {
	utils.Logger.Info("starting run metrics collector")
	ticker := time.NewTicker(interval)
	for {
		<-ticker.C
		c.Lock()
		if len(c.tenantRuns) == 0 {
			c.Unlock()
			continue
		}
		report := c.generateReport()
		c.tenantRuns = map[uint]*aggregatedRuns{}
		c.Unlock()
		utils.Logger.Info("dataset run activity report\n" + report)
	}
}

// generateReport renders the per-tenant run table. Callers hold the lock.
func (c *Collector) generateReport() string {
	tenantIDs := make([]uint, 0, len(c.tenantRuns))
	for tenantID := range c.tenantRuns {
		tenantIDs = append(tenantIDs, tenantID)
	}
	sort.Slice(tenantIDs, func(i, j int) bool { return tenantIDs[i] < tenantIDs[j] })
	report := ""
	for _, tenantID := range tenantIDs {
		runs := c.tenantRuns[tenantID]
		report += fmt.Sprintf("tenant: %d\n", tenantID)
		tableBuf := &bytes.Buffer{}
		table := tablewriter.NewWriter(tableBuf)
		table.SetHeader([]string{"Dataset", "Runs", "Failures", "Total Duration"})
		names := make([]string, 0, len(runs.Datasets))
		for name := range runs.Datasets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			stats := runs.Datasets[name]
			table.Append([]string{
				stats.Name,
				fmt.Sprintf("%d", stats.Count),
				fmt.Sprintf("%d", stats.Failures),
				stats.TotalDuration.String(),
			})
		}
		table.Render()
		report += tableBuf.String()
	}
	return report
}
