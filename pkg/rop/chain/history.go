package chain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/chainer/pkg/rop"
)

// StepRecord is the trace of one applied handler. Context is a clone taken
// right after the handler succeeded, or the live context when snapshots are
// disabled.
type StepRecord[C any] struct {
	Name    string
	Context C
	Start   time.Time
	End     time.Time
}

func (r StepRecord[C]) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Timeline is the per-run audit trail shared by every history result.
// At any terminal state len(History)+len(UnappliedSteps) == len(DeclaredSteps).
type Timeline[C any] struct {
	RunID          uuid.UUID
	Chain          string
	History        []StepRecord[C]
	DeclaredSteps  []string
	UnappliedSteps []string
	Start          time.Time
	End            time.Time
}

func (t *Timeline[C]) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// AppliedSteps lists the names of the steps in History.
func (t *Timeline[C]) AppliedSteps() []string {
	names := make([]string, 0, len(t.History))
	for _, h := range t.History {
		names = append(names, h.Name)
	}
	return names
}

func newTimeline[C any](chain string, declared []string) Timeline[C] {
	return Timeline[C]{
		RunID:          uuid.New(),
		Chain:          chain,
		History:        []StepRecord[C]{},
		DeclaredSteps:  append([]string{}, declared...),
		UnappliedSteps: []string{},
		Start:          time.Now(),
	}
}

// HistoryResult is the outcome of ExecuteWithHistory.
type HistoryResult[C any] struct {
	Result rop.Result[C]
	Timeline[C]
}

// PrintOutput renders a human-readable report of the run.
func (h *HistoryResult[C]) PrintOutput(includeLineBreaks bool) string {
	return printOutput(fmt.Sprintf("%T", *new(C)), h.Result.IsSuccess(), h.Result.Reason(), &h.Timeline, includeLineBreaks)
}

func (h *HistoryResult[C]) String() string {
	return h.PrintOutput(true)
}

const separator = "----------------------------------------"

func printOutput[C any](contextType string, success bool, reason string, t *Timeline[C], includeLineBreaks bool) string {
	var sb strings.Builder

	if includeLineBreaks {
		sb.WriteString(separator + "\n")
	}

	if t.Chain != "" {
		fmt.Fprintf(&sb, "Chain: %s\n", t.Chain)
	}
	fmt.Fprintf(&sb, "Context: %s\n", contextType)
	fmt.Fprintf(&sb, "Success: %t\n", success)
	if success {
		sb.WriteString("Error: None\n")
	} else {
		fmt.Fprintf(&sb, "Error: %s\n", reason)
	}
	fmt.Fprintf(&sb, "Start: %s\n", t.Start.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "End: %s\n", t.End.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "Execution Time: %s\n", t.Duration())

	sb.WriteString("Applied Steps\n")
	for _, r := range t.History {
		fmt.Fprintf(&sb, "\t-%s; Duration: %s\n", r.Name, r.Duration())
	}

	if len(t.UnappliedSteps) != 0 {
		sb.WriteString("Not Applied Steps\n")
		for _, name := range t.UnappliedSteps {
			fmt.Fprintf(&sb, "\t-%s\n", name)
		}
	}

	if includeLineBreaks {
		sb.WriteString(separator + "\n")
	}

	return sb.String()
}
