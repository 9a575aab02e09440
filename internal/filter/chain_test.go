package filter

import (
	"errors"
	"sync"
	"testing"
)

func TestCompose_Empty(t *testing.T) {
	_, err := Compose[int](nil)
	if !errors.Is(err, ErrEmptyChain) {
		t.Fatalf("expected ErrEmptyChain, got %v", err)
	}
}

func TestCompose_NilElement(t *testing.T) {
	_, err := Compose([]Filter[int]{isEven, nil, True[int]{}})
	var nilErr *NilFilterError
	if !errors.As(err, &nilErr) {
		t.Fatalf("expected NilFilterError, got %v", err)
	}
	if nilErr.Index != 1 {
		t.Errorf("expected index 1, got %d", nilErr.Index)
	}
}

func TestCompose_UnusableElements(t *testing.T) {
	cases := []struct {
		name string
		f    Filter[int]
	}{
		{"not of nil", Not[int]{}},
		{"nested not of nil", Not[int]{F: Not[int]{}}},
		{"typed nil pointer", (*counting)(nil)},
		{"nil func", Func[int](nil)},
		{"nil chain", (*Chain[int])(nil)},
		{"not of typed nil", Not[int]{F: (*counting)(nil)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compose([]Filter[int]{isEven, tc.f, True[int]{}})
			var nilErr *NilFilterError
			if !errors.As(err, &nilErr) {
				t.Fatalf("expected NilFilterError, got %v", err)
			}
			if nilErr.Index != 1 {
				t.Errorf("expected index 1, got %d", nilErr.Index)
			}
		})
	}
}

func TestCompose_NotWithOperand(t *testing.T) {
	chain, err := Compose([]Filter[int]{Not[int]{F: isEven}})
	if err != nil {
		t.Fatal(err)
	}
	if !chain.Keep(3) || chain.Keep(4) {
		t.Error("expected negated evenness")
	}
}

func TestChain_AndSemantics(t *testing.T) {
	chain, err := Compose([]Filter[int]{isPositive, isEven, belowTen})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range sampleRecords {
		want := r > 0 && r%2 == 0 && r < 10
		if got := chain.Keep(r); got != want {
			t.Errorf("record %d: expected %v, got %v", r, want, got)
		}
	}
}

func TestChain_ShortCircuit(t *testing.T) {
	first := always(true)
	reject := always(false)
	after := always(true)

	chain, err := Compose([]Filter[int]{first, reject, after})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if chain.Keep(i) {
			t.Fatal("expected reject")
		}
	}
	if first.calls.Load() != 100 || reject.calls.Load() != 100 {
		t.Errorf("expected leading filters called 100 times, got %d and %d",
			first.calls.Load(), reject.calls.Load())
	}
	if after.calls.Load() != 0 {
		t.Errorf("filter after reject was called %d times", after.calls.Load())
	}
}

func TestChain_TerminalIsIdentity(t *testing.T) {
	lists := [][]Filter[int]{
		{isPositive},
		{isEven, belowTen},
		{isPositive, Not[int]{F: isEven}},
	}
	for _, l := range lists {
		plain, err := Compose(l)
		if err != nil {
			t.Fatal(err)
		}
		terminated, err := Compose(append(append([]Filter[int]{}, l...), True[int]{}))
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range sampleRecords {
			if plain.Keep(r) != terminated.Keep(r) {
				t.Errorf("%s: terminal changed result for %d", plain, r)
			}
		}
	}
}

func TestChain_NestingEqualsInlining(t *testing.T) {
	inner, err := Compose([]Filter[int]{isEven, belowTen})
	if err != nil {
		t.Fatal(err)
	}
	nested, err := Compose([]Filter[int]{isPositive, inner, True[int]{}})
	if err != nil {
		t.Fatal(err)
	}
	inlined, err := Compose([]Filter[int]{isPositive, isEven, belowTen, True[int]{}})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range sampleRecords {
		if nested.Keep(r) != inlined.Keep(r) {
			t.Errorf("record %d: nested %v, inlined %v", r, nested.Keep(r), inlined.Keep(r))
		}
	}
}

func TestChain_CopiesInput(t *testing.T) {
	list := []Filter[int]{isEven}
	chain, err := Compose(list)
	if err != nil {
		t.Fatal(err)
	}
	list[0] = Not[int]{F: isEven}
	if !chain.Keep(2) {
		t.Error("chain changed after caller modified its list")
	}
	fs := chain.Filters()
	fs[0] = nil
	if chain.Filters()[0] == nil {
		t.Error("Filters exposed internal slice")
	}
}

func TestChain_FirstReject(t *testing.T) {
	chain, err := Compose([]Filter[int]{isPositive, isEven, True[int]{}})
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := chain.FirstReject(-2); ok || i != 0 {
		t.Errorf("expected rejection at 0, got %d %v", i, ok)
	}
	if i, ok := chain.FirstReject(3); ok || i != 1 {
		t.Errorf("expected rejection at 1, got %d %v", i, ok)
	}
	if i, ok := chain.FirstReject(4); !ok || i != -1 {
		t.Errorf("expected keep, got %d %v", i, ok)
	}
}

func TestChain_String(t *testing.T) {
	chain, err := Compose([]Filter[int]{Not[int]{F: True[int]{}}, True[int]{}})
	if err != nil {
		t.Fatal(err)
	}
	if got := chain.String(); got != "and(not(true), true)" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestChain_ConcurrentKeep(t *testing.T) {
	c := always(true)
	chain, err := Compose([]Filter[int]{isPositive, c, True[int]{}})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= 1000; i++ {
				if !chain.Keep(i) {
					t.Errorf("expected keep for %d", i)
					return
				}
			}
		}()
	}
	wg.Wait()

	if c.calls.Load() != 8000 {
		t.Errorf("expected 8000 calls, got %d", c.calls.Load())
	}
}

func TestChain_KeepDoesNotAllocate(t *testing.T) {
	chain, err := Compose([]Filter[int]{isPositive, isEven, Not[int]{F: belowTen}, True[int]{}})
	if err != nil {
		t.Fatal(err)
	}
	allocs := testing.AllocsPerRun(1000, func() {
		chain.Keep(12)
	})
	if allocs != 0 {
		t.Errorf("expected zero allocations, got %v", allocs)
	}
}
