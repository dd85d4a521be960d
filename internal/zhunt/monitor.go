package zhunt

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"
)

// Status of one partition's predictor run, advisory only.
type Status string

const (
	// StatusStarting means no artifact has appeared yet
	StatusStarting Status = "starting"

	// StatusComputing means the intermediate scoring file is growing
	StatusComputing Status = "computing"

	// StatusCompleted means the probability file exists
	StatusCompleted Status = "completed"
)

// Progress is one partition's observed state.
type Progress struct {
	// Partition is the sequence ID
	Partition string

	// Status derived from which artifacts exist
	Status Status

	// Bytes of the newest artifact file
	Bytes int64
}

// Monitor polls each registered partition's artifact files on a fixed
// interval and exposes a status map. It only reads file metadata, never
// in-progress contents, so the worst race with a writer is observing a
// partial size. Owned by the pool's caller, not a package global.
type Monitor struct {
	// Interval between polls (default 2s)
	Interval time.Duration

	mu       sync.Mutex
	tracked  map[string]string // partition -> partition file path
	progress map[string]Progress
}

// NewMonitor returns a monitor polling every interval.
func NewMonitor(interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Monitor{
		Interval: interval,
		tracked:  make(map[string]string),
		progress: make(map[string]Progress),
	}
}

// register adds a partition before its worker starts.
func (m *Monitor) register(partition, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tracked[partition] = path
	m.progress[partition] = Progress{Partition: partition, Status: StatusStarting}
}

// Run polls until stop is closed. It runs as its own goroutine and
// neither blocks nor serializes worker execution.
func (m *Monitor) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			m.poll() // one final pass so completed states land
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll refreshes every partition's status from artifact file metadata.
func (m *Monitor) poll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for partition, path := range m.tracked {
		arts := ArtifactsFor(path)

		if info, err := os.Stat(arts.ProbabilityFile); err == nil {
			m.progress[partition] = Progress{
				Partition: partition,
				Status:    StatusCompleted,
				Bytes:     info.Size(),
			}
			continue
		}

		if info, err := os.Stat(arts.ScoreFile); err == nil {
			m.progress[partition] = Progress{
				Partition: partition,
				Status:    StatusComputing,
				Bytes:     info.Size(),
			}
			continue
		}

		m.progress[partition] = Progress{Partition: partition, Status: StatusStarting}
	}
}

// Snapshot returns the current progress of every partition, sorted by
// partition ID.
func (m *Monitor) Snapshot() []Progress {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := make([]Progress, 0, len(m.progress))
	for _, p := range m.progress {
		snap = append(snap, p)
	}
	sort.Slice(snap, func(i, j int) bool {
		return snap[i].Partition < snap[j].Partition
	})

	return snap
}

// Write logs the snapshot as an aligned table.
func (m *Monitor) Write(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	fmt.Fprintf(tw, "partition\tstatus\tsize\t\n")
	for _, p := range m.Snapshot() {
		fmt.Fprintf(tw, "%s\t%s\t%.1f MB\t\n", p.Partition, p.Status, float64(p.Bytes)/(1024*1024))
	}
	tw.Flush()
}
