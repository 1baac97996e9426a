package feature

import (
	"fmt"
	"strings"

	"ppaxe-backend-controller/domain/ppi"
)

type Region string

const (
	RegionBetween Region = "between"
	RegionLeft    Region = "left"
	RegionRight   Region = "right"
	RegionAll     Region = "all"
)

func regionRange(c *ppi.InteractionCandidate, region Region) (int, int, error) {
	switch region {
	case RegionBetween:
		return c.Prot1.End, c.Prot2.Start, nil
	case RegionLeft:
		return 0, c.Prot1.Start, nil
	case RegionRight:
		return c.Prot2.End, len(c.Tokens()), nil
	case RegionAll:
		return 0, len(c.Tokens()), nil
	}
	return 0, 0, fmt.Errorf("unknown region [%s]", region)
}

// POSSequence joins with "," the tags of the tokens of a region, for diagnostics.
func POSSequence(c *ppi.InteractionCandidate, region Region) (string, error) {
	begin, end, err := regionRange(c, region)
	if err != nil {
		return "", err
	}

	tags := make([]string, 0, end-begin)
	for _, token := range c.Tokens()[begin:end] {
		tags = append(tags, token.POS)
	}
	return strings.Join(tags, ","), nil
}
