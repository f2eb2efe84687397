package site

import "strconv"

// Carousel cycles through Len slides.
type Carousel struct {
	Len int
}

// Next returns the slide after i, wrapping to the first.
func (c Carousel) Next(i int) int {
	if c.Len <= 0 {
		return 0
	}
	return (c.Clamp(i) + 1) % c.Len
}

// Prev returns the slide before i, wrapping to the last.
func (c Carousel) Prev(i int) int {
	if c.Len <= 0 {
		return 0
	}
	return (c.Clamp(i) - 1 + c.Len) % c.Len
}

// Clamp limits i to a valid slide index.
func (c Carousel) Clamp(i int) int {
	switch {
	case c.Len <= 0 || i < 0:
		return 0
	case i >= c.Len:
		return c.Len - 1
	default:
		return i
	}
}

// Parse reads a slide index from a query value, falling back to 0.
func (c Carousel) Parse(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return c.Clamp(i)
}

// Indexes returns 0..Len-1, for rendering navigation dots.
func (c Carousel) Indexes() []int {
	out := make([]int, 0, c.Len)
	for i := 0; i < c.Len; i++ {
		out = append(out, i)
	}
	return out
}
