package board

import "encoding/json"

// Counters tallies every cell code on a grid. All seven codes are always present.
type Counters [NumCodes]int

// Count tallies the cells of g.
func Count(g *Grid) Counters {
	var c Counters
	for _, code := range g.cells {
		c[code]++
	}
	return c
}

// Get returns the number of cells holding code.
func (c Counters) Get(code Code) int {
	return c[code]
}

// Total is the number of counted cells.
func (c Counters) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Map returns the counters keyed by cell code string.
func (c Counters) Map() map[string]int {
	m := make(map[string]int, NumCodes)
	for _, code := range Codes {
		m[code.String()] = c[code]
	}
	return m
}

func (c Counters) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

func (c *Counters) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*c = Counters{}
	for k, v := range m {
		if code, ok := ParseCode(k); ok {
			c[code] = v
		}
	}
	return nil
}
