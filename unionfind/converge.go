package unionfind

import (
	"context"

	"github.com/katalvlaran/critrace/exchange"
	"github.com/katalvlaran/critrace/simplex"
)

// Converge drives one Block per rank to a fixed point using ring's
// progress-driven exchange (spec.md §4.4, §4.7): every round, each block
// answers any Query addressed to it, adopts any Pointer/Union response it
// receives, then re-scans its own still-incomplete ids and issues a fresh
// Query toward whichever rank owner reports for the furthest local
// representative it can currently reach. owner resolves a simplex.ID to
// the rank that Add-ed it; callers derive it from the same lattice
// partition containment test original_source uses to resolve a related
// element's gid_of, rather than discovering ownership over the wire —
// only parent pointers are protocol state here.
//
// Converge returns once a round passes in which no block has an
// unresolved id to query (every id is a local root or marked Resolved)
// and no messages are in flight, or when ctx is cancelled or a handler
// returns an error. Ids whose root is remote never get a complete Find
// result; Resolved is what ends their querying.
func Converge(ctx context.Context, ring *exchange.Ring, blocks []*Block, owner func(simplex.ID) int) error {
	return ring.IExchange(ctx, func(rank int, inbox []exchange.Message) ([]exchange.Message, bool, error) {
		b := blocks[rank]
		progressed := false
		var outbound []exchange.Message

		for _, msg := range inbox {
			switch msg.Kind {
			case exchange.KindQuery:
				root, complete := b.Find(msg.Parent)
				if complete {
					outbound = append(outbound, exchange.Message{
						Kind: exchange.KindUnion, ID: msg.ID, Root: root, From: rank, To: msg.From,
					})
				} else {
					outbound = append(outbound, exchange.Message{
						Kind: exchange.KindPointer, ID: msg.ID, Parent: root, From: rank, To: msg.From,
					})
				}
				progressed = true
			case exchange.KindPointer:
				if err := b.SetParent(msg.ID, msg.Parent); err != nil {
					return nil, false, err
				}
				progressed = true
			case exchange.KindUnion:
				if err := b.SetParent(msg.ID, msg.Root); err != nil {
					return nil, false, err
				}
				b.Confirm(msg.ID)
				progressed = true
			}
		}

		for id, p := range b.Parent {
			if id == p || b.Resolved[id] {
				continue
			}
			root, complete := b.Find(id)
			if complete {
				continue
			}
			to := owner(root)
			if to == rank {
				continue
			}
			outbound = append(outbound, exchange.Message{
				Kind: exchange.KindQuery, ID: id, Parent: root, From: rank, To: to,
			})
		}

		return outbound, progressed, nil
	})
}
