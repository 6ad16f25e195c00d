package anim

import "time"

// Playback is the handle of one scheduled replay. It is driven by elapsed
// time since the run started and can be cancelled, after which no further
// steps are returned.
type Playback struct {
	id        uint64
	tl        Timeline
	next      int
	cancelled bool
}

func Start(tl Timeline, id uint64) *Playback {
	return &Playback{id: id, tl: tl}
}

func (p *Playback) ID() uint64           { return p.id }
func (p *Playback) Timeline() Timeline   { return p.tl }
func (p *Playback) Cancelled() bool      { return p.cancelled }
func (p *Playback) Applied() int         { return p.next }
func (p *Playback) Pending() int         { return len(p.tl.Steps) - p.next }
func (p *Playback) Cancel()              { p.cancelled = true }
func (p *Playback) Total() time.Duration { return p.tl.Done }

// Advance returns, in timeline order, every step due at elapsed that has not
// been returned before.
func (p *Playback) Advance(elapsed time.Duration) []Step {
	if p.cancelled {
		return nil
	}
	from := p.next
	for p.next < len(p.tl.Steps) && p.tl.Steps[p.next].At <= elapsed {
		p.next++
	}
	if from == p.next {
		return nil
	}
	return p.tl.Steps[from:p.next]
}

// Finished reports whether the lock may be released at elapsed. A cancelled
// playback is always finished.
func (p *Playback) Finished(elapsed time.Duration) bool {
	return p.cancelled || elapsed >= p.tl.Done
}

// Progress is the fraction of the timeline covered at elapsed.
func (p *Playback) Progress(elapsed time.Duration) float64 {
	if p.tl.Done <= 0 || elapsed >= p.tl.Done {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(p.tl.Done)
}
