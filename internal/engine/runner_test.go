package engine

import "testing"

func TestRunnerReportsEachChunk(t *testing.T) {
	s := mustSim(t, smallConfig(1, 4))
	var reports []Status
	r := &Runner{Sim: s, Total: 250, Every: 100, OnReport: func(st Status) {
		reports = append(reports, st)
	}}

	sum := r.Run(Never)

	if sum.Ticks != 250 || sum.Interrupted {
		t.Fatalf("summary: %+v", sum)
	}
	want := []uint64{100, 200, 250}
	if len(reports) != len(want) {
		t.Fatalf("reports: got %d, want %d", len(reports), len(want))
	}
	for i, st := range reports {
		if st.Cycle != want[i] {
			t.Errorf("report %d cycle: got %d, want %d", i, st.Cycle, want[i])
		}
	}
}

func TestRunnerWithoutIntervalRunsOnce(t *testing.T) {
	s := mustSim(t, smallConfig(1, 4))
	reported := false
	r := &Runner{Sim: s, Total: 40, OnReport: func(Status) { reported = true }}

	sum := r.Run(nil)

	if sum.Ticks != 40 || s.LastTick != 40 {
		t.Errorf("summary %+v tick %d", sum, s.LastTick)
	}
	if reported {
		t.Error("no report expected without an interval")
	}
}

func TestRunnerInterrupted(t *testing.T) {
	s := mustSim(t, smallConfig(1, 4))
	r := &Runner{Sim: s, Total: 1000, Every: 10}

	sum := r.Run(CancelFunc(func() bool { return s.LastTick >= 35 }))

	if !sum.Interrupted {
		t.Fatal("expected interruption")
	}
	if s.LastTick != 35 {
		t.Errorf("tick: got %d, want 35", s.LastTick)
	}
}

func TestRunnerZeroTotal(t *testing.T) {
	s := mustSim(t, smallConfig(1, 4))
	sum := (&Runner{Sim: s}).Run(Never)
	if sum.Ticks != 0 || sum.Interrupted || s.LastTick != 0 {
		t.Errorf("summary %+v tick %d", sum, s.LastTick)
	}
}
