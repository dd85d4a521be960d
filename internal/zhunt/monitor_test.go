package zhunt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// status tracks artifact files: nothing yet, intermediate only, final
func Test_Monitor_poll(t *testing.T) {
	dir := t.TempDir()

	m := NewMonitor(time.Second)
	m.register("chr2L", filepath.Join(dir, "chr2L.fa"))
	m.register("chr2R", filepath.Join(dir, "chr2R.fa"))
	m.register("chrX", filepath.Join(dir, "chrX.fa"))

	// chr2R mid-run, chrX finished
	if err := os.WriteFile(filepath.Join(dir, "chr2R.fa"+scoreExt), []byte("12345"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "chrX.fa"+probExt), []byte("done"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	m.poll()

	snap := m.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 tracked partitions, got %d", len(snap))
	}

	want := map[string]Status{
		"chr2L": StatusStarting,
		"chr2R": StatusComputing,
		"chrX":  StatusCompleted,
	}
	for _, p := range snap {
		if p.Status != want[p.Partition] {
			t.Errorf("partition %s: expected %s, got %s", p.Partition, want[p.Partition], p.Status)
		}
	}

	// sizes come from the newest artifact
	for _, p := range snap {
		if p.Partition == "chr2R" && p.Bytes != 5 {
			t.Errorf("expected 5 bytes for chr2R, got %d", p.Bytes)
		}
	}
}

// the snapshot is sorted so repeated tables are stable
func Test_Monitor_snapshotOrder(t *testing.T) {
	m := NewMonitor(time.Second)
	m.register("chrX", "chrX.fa")
	m.register("chr2L", "chr2L.fa")
	m.register("chr4", "chr4.fa")

	snap := m.Snapshot()
	for i, want := range []string{"chr2L", "chr4", "chrX"} {
		if snap[i].Partition != want {
			t.Errorf("position %d: expected %s, got %s", i, want, snap[i].Partition)
		}
	}
}

// Run makes a final poll on stop so completions always land
func Test_Monitor_finalPoll(t *testing.T) {
	dir := t.TempDir()

	m := NewMonitor(time.Hour) // never ticks during the test
	m.register("chr3L", filepath.Join(dir, "chr3L.fa"))

	if err := os.WriteFile(filepath.Join(dir, "chr3L.fa"+probExt), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		m.Run(stop)
		close(done)
	}()
	close(stop)
	<-done

	snap := m.Snapshot()
	if len(snap) != 1 || snap[0].Status != StatusCompleted {
		t.Errorf("expected the final poll to observe completion, got %+v", snap)
	}
}

func Test_Monitor_write(t *testing.T) {
	m := NewMonitor(time.Second)
	m.register("chr2L", "chr2L.fa")

	var sb strings.Builder
	m.Write(&sb)

	out := sb.String()
	if !strings.Contains(out, "partition") || !strings.Contains(out, "chr2L") {
		t.Errorf("unexpected progress table:\n%s", out)
	}
	if !strings.Contains(out, string(StatusStarting)) {
		t.Errorf("expected a starting status in:\n%s", out)
	}
}
