package dataset

// Count is the number of examples with a given label.
type Count struct {
	Label string
	N     int
}

// Counts holds the number of examples per label of a table.
type Counts []Count

// Total returns the sum of all counts.
func (c Counts) Total() int {
	var total int
	for _, lc := range c {
		total += lc.N
	}
	return total
}

// Majority returns the label with the highest count and the count. The
// first of several labels sharing the highest count wins.
func (c Counts) Majority() (string, int) {
	var label string
	max := -1
	for _, lc := range c {
		if lc.N > max {
			label = lc.Label
			max = lc.N
		}
	}
	if max < 0 {
		max = 0
	}
	return label, max
}
