package service

// tally accumulates a review count and rating sum.
type tally struct {
	count int
	sum   int
}

func (t *tally) add(rating int) {
	t.count++
	t.sum += rating
}

func (t *tally) merge(o tally) {
	t.count += o.count
	t.sum += o.sum
}

// average returns sum/count, or nil when there is nothing to average.
// A nil average is encoded as JSON null.
func (t tally) average() *float64 {
	if t.count == 0 {
		return nil
	}
	avg := float64(t.sum) / float64(t.count)
	return &avg
}
