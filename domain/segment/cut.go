package segment

// cutSeparators are tried in this order; a later one is used only when no earlier one fits.
var cutSeparators = []rune{';', ',', ' '}

/*
cutter cuts a unit longer than maxRunes into pieces of minRunes to maxRunes runes. A piece ends right
after the first separator (in priority order, last occurrence) that keeps it at least minRunes
long, or at maxRunes when no separator does.
*/
type cutter struct {
	separators []rune
	minRunes   int
	maxRunes   int
}

func newCutter(maxRunes int) *cutter {
	minRunes := maxRunes / 2
	if minRunes < 1 {
		minRunes = 1
	}
	return &cutter{separators: cutSeparators, minRunes: minRunes, maxRunes: maxRunes}
}

// cuts returns the rune offsets where pieces end, len(runes) excluded.
func (c *cutter) cuts(runes []rune) []int {
	var ret []int
	for start := 0; len(runes)-start > c.maxRunes; {
		end := c.cutPoint(runes, start)
		ret = append(ret, end)
		start = end
	}
	return ret
}

func (c *cutter) cutPoint(runes []rune, start int) int {
	limit := start + c.maxRunes
	for _, separator := range c.separators {
		for i := limit - 1; i >= start+c.minRunes-1; i-- {
			if runes[i] == separator {
				return i + 1
			}
		}
	}
	return limit
}

// pieces cuts text; joining the pieces gives back text.
func (c *cutter) pieces(text string) []string {
	runes := []rune(text)
	cuts := c.cuts(runes)

	ret := make([]string, 0, len(cuts)+1)
	last := 0
	for _, cut := range cuts {
		ret = append(ret, string(runes[last:cut]))
		last = cut
	}
	return append(ret, string(runes[last:]))
}
