package exchange_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/critrace/exchange"
	"github.com/katalvlaran/critrace/simplex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(corner int32) simplex.ID {
	i := simplex.ID{Dim: 2, K: 0}
	i.Corner[0] = corner

	return i
}

func TestAllToAllDeliversToDestinationRank(t *testing.T) {
	ring := exchange.NewRing(3)

	delivered, err := ring.AllToAll(context.Background(), func(rank int) ([]exchange.Message, error) {
		if rank == 0 {
			return []exchange.Message{{Kind: exchange.KindQuery, ID: id(1), From: 0, To: 2}}, nil
		}

		return nil, nil
	})
	require.NoError(t, err)

	assert.Empty(t, delivered[0])
	assert.Empty(t, delivered[1])
	require.Len(t, delivered[2], 1)
	assert.Equal(t, exchange.KindQuery, delivered[2][0].Kind)
	assert.Equal(t, 0, delivered[2][0].From)
}

func TestAllToAllPreservesPerPeerOrder(t *testing.T) {
	ring := exchange.NewRing(2)

	delivered, err := ring.AllToAll(context.Background(), func(rank int) ([]exchange.Message, error) {
		if rank == 0 {
			return []exchange.Message{
				{Kind: exchange.KindQuery, ID: id(1), From: 0, To: 1},
				{Kind: exchange.KindQuery, ID: id(2), From: 0, To: 1},
				{Kind: exchange.KindQuery, ID: id(3), From: 0, To: 1},
			}, nil
		}

		return nil, nil
	})
	require.NoError(t, err)
	require.Len(t, delivered[1], 3)
	assert.Equal(t, int32(1), delivered[1][0].ID.Corner[0])
	assert.Equal(t, int32(2), delivered[1][1].ID.Corner[0])
	assert.Equal(t, int32(3), delivered[1][2].ID.Corner[0])
}

func TestIExchangeStopsAtQuiescence(t *testing.T) {
	ring := exchange.NewRing(2)

	rounds := 0
	err := ring.IExchange(context.Background(), func(rank int, inbox []exchange.Message) ([]exchange.Message, bool, error) {
		if rank == 0 {
			rounds++
		}
		if rank == 0 && len(inbox) == 0 && rounds == 1 {
			return []exchange.Message{{Kind: exchange.KindPointer, ID: id(1), From: 0, To: 1}}, true, nil
		}

		return nil, false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rounds, "round 1 sends the message, round 2 sees quiescence and stops")
}

func TestIExchangeDeliversBetweenRounds(t *testing.T) {
	ring := exchange.NewRing(2)

	var rank1Saw []exchange.Message
	sent := false // touched only by rank 0's goroutine
	err := ring.IExchange(context.Background(), func(rank int, inbox []exchange.Message) ([]exchange.Message, bool, error) {
		switch rank {
		case 0:
			if len(inbox) == 0 && !sent {
				sent = true

				return []exchange.Message{{Kind: exchange.KindUnion, ID: id(5), Root: id(1), From: 0, To: 1}}, true, nil
			}

			return nil, false, nil
		case 1:
			if len(inbox) > 0 {
				rank1Saw = inbox

				return nil, true, nil
			}

			return nil, false, nil
		}

		return nil, false, nil
	})
	require.NoError(t, err)
	require.Len(t, rank1Saw, 1)
	assert.Equal(t, id(1), rank1Saw[0].Root)
}
