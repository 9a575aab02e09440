package filter

import "sync/atomic"

// counting wraps a fixed decision and records how often it was asked.
type counting struct {
	keep  bool
	calls atomic.Int64
}

func (c *counting) Keep(int) bool {
	c.calls.Add(1)
	return c.keep
}

func always(keep bool) *counting { return &counting{keep: keep} }

var (
	isPositive = Func[int](func(r int) bool { return r > 0 })
	isEven     = Func[int](func(r int) bool { return r%2 == 0 })
	belowTen   = Func[int](func(r int) bool { return r < 10 })
)

var sampleRecords = []int{-4, -1, 0, 1, 2, 3, 8, 9, 10, 12, 1000}
