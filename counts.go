package qsearch

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Counts maps a basis index to the number of shots that observed it.
type Counts map[int]int

// Total returns the number of shots the counts were accumulated over.
func (c Counts) Total() int {
	var total int
	for _, n := range c {
		total += n
	}
	return total
}

// Frequency returns the observed fraction of shots that landed on index.
func (c Counts) Frequency(index int) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[index]) / float64(total)
}

// Merge adds other into c.
func (c Counts) Merge(other Counts) {
	for index, n := range other {
		c[index] += n
	}
}

// Indices returns the observed basis indices in ascending order.
func (c Counts) Indices() []int {
	indices := maps.Keys(c)
	slices.Sort(indices)
	return indices
}

// MostFrequent returns the index seen most often; ties go to the lower index.
func (c Counts) MostFrequent() (index, count int) {
	index = -1
	for _, i := range c.Indices() {
		if c[i] > count {
			index, count = i, c[i]
		}
	}
	return index, count
}

/*
Bitstrings re-keys the counts by fixed-width bit pattern. The most significant
character is qubit width-1 and the last character is qubit 0, so index 1 on
three qubits is "001".
*/
func (c Counts) Bitstrings(width int) map[string]int {
	out := make(map[string]int, len(c))
	for index, n := range c {
		out[Bitstring(index, width)] = n
	}
	return out
}
