package layout

// Strategy is the packing discipline used when folding fields.
type Strategy int

const (
	// Optimal reorders statically sized fields by decreasing alignment to
	// minimize padding. There are no cross-unit constraints on the result.
	Optimal Strategy = iota

	// Universal folds fields strictly in declared order so that every
	// compilation unit referencing the aggregate computes identical offsets.
	Universal
)

func (s Strategy) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Universal:
		return "universal"
	default:
		return "unknown"
	}
}

// Kind is the kind of object being laid out.
type Kind int

const (
	// NonHeapObject does not require a heap header.
	NonHeapObject Kind = iota

	// HeapObject is destined for heap allocation and is prefixed with the
	// standard heap header.
	HeapObject
)

func (k Kind) String() string {
	switch k {
	case NonHeapObject:
		return "non-heap"
	case HeapObject:
		return "heap"
	default:
		return "unknown"
	}
}
