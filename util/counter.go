package util

import "sort"

// Counter tracks multiplicities by string key.
type Counter struct {
	counts map[string]int
	total  int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

func (c *Counter) Add(key string) {
	c.counts[key]++
	c.total++
}

func (c *Counter) Count(key string) int {
	return c.counts[key]
}

func (c *Counter) Total() int {
	return c.total
}

// Keys returns the counted keys in sorted order.
func (c *Counter) Keys() []string {
	keys := make([]string, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fractions returns each key's share of the total. Empty counters return an
// empty map.
func (c *Counter) Fractions() map[string]float64 {
	out := make(map[string]float64, len(c.counts))
	if c.total == 0 {
		return out
	}
	for k, n := range c.counts {
		out[k] = float64(n) / float64(c.total)
	}
	return out
}
