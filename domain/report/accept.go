package report

import (
	"fmt"

	"ppaxe-backend-controller/domain/ppi"
)

// AcceptPolicy decides which candidates count as interactions in the summaries.
type AcceptPolicy int

const (
	// AcceptUnscored counts an unscored candidate unconditionally and a scored one when its label is true.
	AcceptUnscored AcceptPolicy = iota
	// RequireAccepted counts only scored candidates labelled true.
	RequireAccepted
)

func (p AcceptPolicy) Accepts(c *ppi.InteractionCandidate) bool {
	if !c.Scored() {
		return p == AcceptUnscored
	}
	return c.Label
}

func (p AcceptPolicy) String() string {
	switch p {
	case AcceptUnscored:
		return "accept_unscored"
	case RequireAccepted:
		return "require_accepted"
	}
	return fmt.Sprintf("AcceptPolicy(%d)", int(p))
}
