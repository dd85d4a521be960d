// Package zhunt drives the external Z-Hunt predictor over genome
// partitions: a bounded worker-process pool, a polling progress
// monitor, and a parser for the predictor's probability output.
package zhunt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"
)

const (
	// scoreExt is the extension of the intermediate scoring artifact
	scoreExt = ".Z-SCORE"

	// probExt is the extension of the final probability artifact
	probExt = ".probability"
)

// Artifacts are the two files the predictor writes beside its input,
// one set per partition.
type Artifacts struct {
	// ScoreFile is the intermediate scoring file
	ScoreFile string `json:"score_file"`

	// ProbabilityFile is the final scored-windows file
	ProbabilityFile string `json:"probability_file"`
}

// Predictor runs the structural prediction against one single-sequence
// FASTA file. The pool depends only on this capability so an in-process
// implementation can substitute the external binary.
type Predictor interface {
	Run(ctx context.Context, seqFile string) (Artifacts, error)
}

// ProcessError reports a failed predictor process for one partition.
type ProcessError struct {
	// SeqFile the predictor was launched against
	SeqFile string

	// Output captured from the process (stdout+stderr)
	Output string

	// Err is the launch or exit error
	Err error
}

func (e *ProcessError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("predictor failed on %s: %v", e.SeqFile, e.Err)
	}
	return fmt.Sprintf("predictor failed on %s: %v: %s", e.SeqFile, e.Err, e.Output)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// CommandPredictor invokes the Z-Hunt binary as
// <command> <minRunSize> <windowParam> <maxRunSize> <seqFile>.
type CommandPredictor struct {
	// Command is the path to the predictor binary
	Command string

	// MinRunSize, WindowParam and MaxRunSize are the predictor's
	// positional parameters (the original analysis ran 12 8 12)
	MinRunSize  int
	WindowParam int
	MaxRunSize  int

	// Grace is how long a cancelled process gets between SIGTERM
	// and SIGKILL
	Grace time.Duration
}

// Run launches the predictor against seqFile and waits for it to exit.
// On cancellation the process is sent SIGTERM, then killed after the
// grace period, so no orphaned workers remain.
func (p *CommandPredictor) Run(ctx context.Context, seqFile string) (Artifacts, error) {
	cmd := exec.CommandContext(
		ctx,
		p.Command,
		strconv.Itoa(p.MinRunSize),
		strconv.Itoa(p.WindowParam),
		strconv.Itoa(p.MaxRunSize),
		seqFile,
	)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	if p.Grace > 0 {
		cmd.WaitDelay = p.Grace
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return Artifacts{}, &ProcessError{SeqFile: seqFile, Output: string(output), Err: err}
	}

	arts := ArtifactsFor(seqFile)
	if _, err := os.Stat(arts.ProbabilityFile); err != nil {
		return Artifacts{}, &ProcessError{
			SeqFile: seqFile,
			Err:     fmt.Errorf("predictor exited 0 but wrote no probability file at %s", arts.ProbabilityFile),
		}
	}

	return arts, nil
}

// ArtifactsFor returns the artifact paths the predictor writes for one
// partition file.
func ArtifactsFor(seqFile string) Artifacts {
	return Artifacts{
		ScoreFile:       seqFile + scoreExt,
		ProbabilityFile: seqFile + probExt,
	}
}
