package session

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"pgregory.net/rapid"
)

func TestBarrierFiresOnLastReport(t *testing.T) {
	b := NewBarrier(3)
	b.Arm()

	if b.Report(2) || b.Report(0) {
		t.Fatal("barrier fired before every reel reported")
	}
	if got := b.Pending(); !slices.Equal(got, []int{1}) {
		t.Fatalf("pending %v, want [1]", got)
	}
	if !b.Report(1) {
		t.Fatal("barrier did not fire on the last report")
	}
	if b.Armed() || b.Pending() != nil {
		t.Fatal("barrier still armed after firing")
	}
}

func TestBarrierIgnoresRedundantReports(t *testing.T) {
	b := NewBarrier(2)
	if b.Report(0) {
		t.Fatal("unarmed barrier fired")
	}

	b.Arm()
	b.Report(0)
	if b.Report(0) {
		t.Fatal("repeated report fired the barrier")
	}
	if !b.Report(1) {
		t.Fatal("barrier did not fire")
	}
	if b.Report(1) || b.Report(0) {
		t.Fatal("barrier fired twice for one spin")
	}
	if b.Report(-1) || b.Report(5) {
		t.Fatal("out of range report fired")
	}
}

func TestBarrierAnyOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "reels")
		order := rapid.Permutation(makeRange(n)).Draw(t, "order")
		extra := rapid.SliceOfN(rapid.IntRange(0, n-1), 0, 10).Draw(t, "extra")

		b := NewBarrier(n)
		b.Arm()
		fired := 0
		for i, reel := range order {
			if b.Report(reel) {
				fired++
				if i != n-1 {
					t.Fatalf("fired after %d of %d reports", i+1, n)
				}
			}
		}
		for _, reel := range extra {
			if b.Report(reel) {
				fired++
			}
		}
		if fired != 1 {
			t.Fatalf("fired %d times", fired)
		}
	})
}

func TestBarrierConcurrentReports(t *testing.T) {
	const reels = 16
	for round := 0; round < 50; round++ {
		b := NewBarrier(reels)
		b.Arm()

		var fired atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < reels; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				// каждый барабан отчитывается дважды
				for k := 0; k < 2; k++ {
					if b.Report(i) {
						fired.Add(1)
					}
				}
			}(i)
		}
		wg.Wait()

		if fired.Load() != 1 {
			t.Fatalf("round %d: fired %d times", round, fired.Load())
		}
	}
}

func makeRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
