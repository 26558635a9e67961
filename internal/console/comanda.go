package console

// Comanda is the open order for one table: an insertion-ordered sequence of
// lines, replaced wholesale on table switch or reload.
type Comanda struct {
	Lines []Line
}

func (c *Comanda) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Comanda) Len() int {
	return len(c.Lines)
}

// Append adds the server-returned canonical line to the end of the order.
func (c *Comanda) Append(line Line) {
	c.Lines = append(c.Lines, line)
}

// Find returns a copy of the line with the given id.
func (c *Comanda) Find(id string) (Line, bool) {
	for _, line := range c.Lines {
		if line.ID == id {
			return line, true
		}
	}
	return Line{}, false
}

// Remove filters out the line with the given id, preserving order.
func (c *Comanda) Remove(id string) bool {
	for i, line := range c.Lines {
		if line.ID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetUnitPrice patches only the unit price of the matching line.
func (c *Comanda) SetUnitPrice(id string, valor float64) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines[i].ValorUnitario = valor
			return true
		}
	}
	return false
}

// Subtotal recomputes the order total from scratch. Totals are never patched
// incrementally, so they cannot drift from the line list.
func (c *Comanda) Subtotal() float64 {
	var subtotal float64
	for _, line := range c.Lines {
		subtotal += line.Total()
	}
	return subtotal
}
