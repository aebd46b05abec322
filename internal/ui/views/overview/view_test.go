package overview

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	benchmarkdto "sdu/internal/modules/benchmark/dto"
	specsdto "sdu/internal/modules/specs/dto"
)

type fakeBench struct {
	runErr        error
	result        benchmarkdto.ResultOutput
	finalizeCalls int
}

func (f *fakeBench) Run(_ context.Context, input benchmarkdto.RunInput) (benchmarkdto.ResultOutput, error) {
	if f.runErr != nil {
		return benchmarkdto.ResultOutput{}, f.runErr
	}
	f.result.BenchmarkType = input.Type
	return f.result, nil
}

func (f *fakeBench) Finalize(_ context.Context, result benchmarkdto.ResultOutput) (benchmarkdto.ResultOutput, error) {
	f.finalizeCalls++
	return result, nil
}

func (f *fakeBench) Live(context.Context) (benchmarkdto.LiveOutput, error) {
	return benchmarkdto.LiveOutput{CPU: 50, GPU: 40, Temp: 65}, nil
}

type fakeSpecs struct{}

func (fakeSpecs) Get(context.Context) (specsdto.SnapshotOutput, error) {
	return specsdto.SnapshotOutput{}, nil
}

func (fakeSpecs) Rescan(context.Context) (specsdto.SnapshotOutput, error) {
	return specsdto.SnapshotOutput{}, nil
}

func newTestModel(bench *fakeBench, networked bool) Model {
	return New(fakeSpecs{}, bench, Config{
		ProgressTick: time.Millisecond,
		LivePoll:     time.Millisecond,
		Networked:    networked,
	})
}

// feed applies messages in order, discarding any produced commands so timer
// scheduling stays under the test's control.
func feed(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestLocalRunCompletesAndFinalizesOnce(t *testing.T) {
	t.Parallel()
	bench := &fakeBench{result: benchmarkdto.ResultOutput{OverallScore: 21000}}
	m := newTestModel(bench, false)

	m, _ = m.StartRun("cpu")
	if m.phase != phaseRunning {
		t.Fatalf("phase = %d, want running", m.phase)
	}
	serial := m.runSerial

	m = feed(t, m, RunDoneMsg{Serial: serial, Result: bench.result})
	for i := 0; i < 49; i++ {
		m = feed(t, m, TickMsg{Serial: serial})
	}
	if m.phase != phaseRunning || m.percent != 98 {
		t.Fatalf("phase=%d percent=%v, want running at 98", m.phase, m.percent)
	}

	var cmd tea.Cmd
	m, cmd = m.Update(TickMsg{Serial: serial})
	if m.phase != phaseComplete {
		t.Fatalf("phase = %d, want complete", m.phase)
	}
	if cmd == nil {
		t.Fatal("expected finalize command on completion")
	}
	if _, ok := cmd().(FinalizedMsg); !ok {
		t.Fatal("completion command did not finalize")
	}
	if bench.finalizeCalls != 1 {
		t.Fatalf("finalize calls = %d, want 1", bench.finalizeCalls)
	}

	// A stale tick after completion must not finalize again.
	m, cmd = m.Update(TickMsg{Serial: serial})
	if cmd != nil {
		t.Fatal("stale tick after completion produced a command")
	}
	if bench.finalizeCalls != 1 {
		t.Fatalf("finalize calls after stale tick = %d, want 1", bench.finalizeCalls)
	}
}

func TestCancelledRunPersistsNothing(t *testing.T) {
	t.Parallel()
	bench := &fakeBench{result: benchmarkdto.ResultOutput{OverallScore: 21000}}
	m := newTestModel(bench, false)

	m, _ = m.StartRun("gaming")
	serial := m.runSerial
	m = feed(t, m, TickMsg{Serial: serial}, TickMsg{Serial: serial})

	m = feed(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != phaseIdle {
		t.Fatalf("phase = %d, want idle after cancel", m.phase)
	}
	if m.percent != 0 || m.window != nil {
		t.Fatal("cancel did not reset transient run state")
	}

	// The run and its timers finish late; their messages carry the old
	// serial and must be inert.
	var cmd tea.Cmd
	m, cmd = m.Update(RunDoneMsg{Serial: serial, Result: bench.result})
	if cmd != nil {
		t.Fatal("stale run result produced a command")
	}
	m, cmd = m.Update(TickMsg{Serial: serial})
	if cmd != nil {
		t.Fatal("stale tick produced a command")
	}
	if m.phase != phaseIdle || bench.finalizeCalls != 0 {
		t.Fatalf("phase=%d finalizeCalls=%d, want idle and 0", m.phase, bench.finalizeCalls)
	}
}

func TestBackendFailureReturnsToTypeSelection(t *testing.T) {
	t.Parallel()
	bench := &fakeBench{}
	m := newTestModel(bench, true)

	m, _ = m.StartRun("cpu")
	serial := m.runSerial
	m = feed(t, m, TickMsg{Serial: serial})

	m = feed(t, m, RunDoneMsg{Serial: serial, Err: errors.New("backend unreachable")})
	if m.phase != phaseTypeSelect {
		t.Fatalf("phase = %d, want type selection after failure", m.phase)
	}
	if m.statusLine == "" {
		t.Fatal("failure did not surface an error")
	}
	if m.percent != 0 {
		t.Fatalf("percent = %v, want reset", m.percent)
	}
}

func TestNetworkedProgressCapsUntilResponse(t *testing.T) {
	t.Parallel()
	bench := &fakeBench{result: benchmarkdto.ResultOutput{OverallScore: 23000}}
	m := newTestModel(bench, true)

	m, _ = m.StartRun("hybrid")
	serial := m.runSerial
	for i := 0; i < 60; i++ {
		m = feed(t, m, TickMsg{Serial: serial})
	}
	if m.percent != remoteCap {
		t.Fatalf("percent = %v, want capped at %d", m.percent, remoteCap)
	}

	var cmd tea.Cmd
	m, cmd = m.Update(RunDoneMsg{Serial: serial, Result: bench.result})
	if m.phase != phaseComplete || m.percent != 100 {
		t.Fatalf("phase=%d percent=%v, want complete at 100", m.phase, m.percent)
	}
	if cmd == nil {
		t.Fatal("expected finalize command")
	}
	cmd()
	if bench.finalizeCalls != 1 {
		t.Fatalf("finalize calls = %d, want 1", bench.finalizeCalls)
	}
}

func TestLiveWindowSlides(t *testing.T) {
	t.Parallel()
	bench := &fakeBench{}
	m := newTestModel(bench, false)

	m, _ = m.StartRun("cpu")
	serial := m.runSerial
	for i := 0; i < liveWindow+5; i++ {
		m = feed(t, m, LiveMsg{
			Serial: serial,
			Sample: benchmarkdto.LiveOutput{CPU: float64(i)},
		})
	}
	if len(m.window) != liveWindow {
		t.Fatalf("window size = %d, want %d", len(m.window), liveWindow)
	}
	if m.window[0].CPU != 5 {
		t.Fatalf("oldest sample = %v, want the window to slide", m.window[0].CPU)
	}
}

func TestSecondStartWhileRunningIsRejected(t *testing.T) {
	t.Parallel()
	bench := &fakeBench{}
	m := newTestModel(bench, false)

	m, _ = m.StartRun("cpu")
	serial := m.runSerial
	m, cmd := m.StartRun("gpu")
	if cmd != nil {
		t.Fatal("second start while running produced a command")
	}
	if m.runSerial != serial || m.runType != "cpu" {
		t.Fatal("second start disturbed the in-flight run")
	}
}
