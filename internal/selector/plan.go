package selector

import (
	"errors"
	"fmt"
)

// MergeContainer is the container every merge plan is normalized to.
const MergeContainer = "mp4"

// ErrInvalidIndex indicates a candidate index outside the generated list.
var ErrInvalidIndex = errors.New("invalid format index")

// Plan is an executable download instruction.
type Plan struct {
	// Selector is the format selector handed to the fetcher: a single format
	// id, or "<video>+<audio>" for merges.
	Selector string
	Merge    bool
	// Container is the forced output container of a merge; empty otherwise.
	Container string
}

// String returns a compact description used in logs.
func (p Plan) String() string {
	if p.Merge {
		return fmt.Sprintf("merge(%s->%s)", p.Selector, p.Container)
	}
	return fmt.Sprintf("single(%s)", p.Selector)
}

// Resolve maps a client-chosen index to a download plan.
func Resolve(candidates []Candidate, index int) (Plan, error) {
	if index < 0 || index >= len(candidates) {
		return Plan{}, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidIndex, index, len(candidates))
	}
	c := candidates[index]
	if c.Kind == KindMerge {
		return Plan{
			Selector:  c.Video.ID + "+" + c.Audio.ID,
			Merge:     true,
			Container: MergeContainer,
		}, nil
	}
	return Plan{Selector: c.Format.ID}, nil
}
