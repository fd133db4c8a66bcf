package transpiler

// counter hands out element numbers for a single compilation, starting at 1.
type counter struct {
	n int
}

func (c *counter) next() int {
	c.n++
	return c.n
}

// issued returns how many numbers have been handed out.
func (c *counter) issued() int {
	return c.n
}
