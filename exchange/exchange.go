package exchange

import (
	"context"

	"github.com/katalvlaran/critrace/simplex"
	"golang.org/x/sync/errgroup"
)

// Kind tags the payload of a Message, matching spec.md §4.4's three
// message shapes for the distributed union-find protocol.
type Kind int

const (
	// KindQuery asks the owner of Parent to report its current root.
	KindQuery Kind = iota
	// KindPointer reports a root that is itself not yet known to be
	// local to the responder: the asker should advance its chain and
	// retry rather than treat it as final.
	KindPointer
	// KindUnion reports a confirmed local root: the asker may adopt it
	// directly as ID's parent.
	KindUnion
)

// Message is one Query/Pointer/Union exchanged between ranks. From and To
// are rank indices into a Ring; ID, Parent, and Root are interpreted by
// Kind as documented above.
type Message struct {
	Kind   Kind
	ID     simplex.ID
	Parent simplex.ID
	Root   simplex.ID
	From   int
	To     int
}

// Ring simulates nranks MPI-style processes as goroutines. It holds no
// per-rank state of its own beyond the rank count: callers supply their
// own per-rank state (e.g. one unionfind.Block per rank) to the round
// functions passed to AllToAll and IExchange.
type Ring struct {
	n int
}

// NewRing returns a Ring of nranks simulated ranks. nranks must be at
// least 1.
func NewRing(nranks int) *Ring {
	return &Ring{n: nranks}
}

// Ranks returns the number of simulated ranks.
func (r *Ring) Ranks() int {
	return r.n
}

// AllToAll runs one round of the bulk-synchronous protocol: produce is
// invoked once per rank (in parallel, via errgroup) with no inbound
// messages to consume — round 0 of spec.md §4.7 — and returns the
// messages that rank wants to send. AllToAll then delivers every message
// to its destination rank's slot in the returned slice — round 1,
// "dequeue everything that arrived". Message order within a single
// (From, To) pair is preserved, satisfying the FIFO-per-peer ordering
// guarantee (spec.md §5) since each rank is a single goroutine producing
// its messages in program order.
func (r *Ring) AllToAll(ctx context.Context, produce func(rank int) ([]Message, error)) ([][]Message, error) {
	outputs := make([][]Message, r.n)

	grp, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.n; i++ {
		rank := i
		grp.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out, err := produce(rank)
			if err != nil {
				return err
			}
			outputs[rank] = out

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	delivered := make([][]Message, r.n)
	for _, msgs := range outputs {
		for _, m := range msgs {
			delivered[m.To] = append(delivered[m.To], m)
		}
	}

	return delivered, nil
}

// IExchange runs round repeatedly — each round sees the messages
// delivered by the previous round's output (empty on round 0) — until a
// round delivers no progress and produces no further messages, the
// quiescence test from spec.md §4.7. round returns the messages rank
// wants to send this round and whether it made any local progress
// (e.g. compressed a path or adopted a new parent) independent of
// whether it sent anything.
func (r *Ring) IExchange(ctx context.Context, round func(rank int, inbox []Message) ([]Message, bool, error)) error {
	pending := make([][]Message, r.n)

	for {
		outputs := make([][]Message, r.n)
		progressed := make([]bool, r.n)

		grp, gctx := errgroup.WithContext(ctx)
		for i := 0; i < r.n; i++ {
			rank := i
			grp.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				out, didProgress, err := round(rank, pending[rank])
				if err != nil {
					return err
				}
				outputs[rank] = out
				progressed[rank] = didProgress

				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return err
		}

		next := make([][]Message, r.n)
		anyMessages := false
		anyProgress := false
		for i, msgs := range outputs {
			anyProgress = anyProgress || progressed[i]
			for _, m := range msgs {
				next[m.To] = append(next[m.To], m)
				anyMessages = true
			}
		}
		if !anyProgress && !anyMessages {
			return nil
		}
		pending = next
	}
}
