package queue

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

// maxReclaimRounds bounds one Reclaim call so a huge backlog cannot keep it
// running forever.
const maxReclaimRounds = 100

// Reclaim takes over entries that have been pending on any consumer of the
// group for longer than ReclaimIdle, handles and acknowledges them. It is
// meant to run periodically so messages of a crashed instance are not lost.
// It returns the number of entries processed.
func (c *Consumer) Reclaim(ctx context.Context) (int, error) {
	start := "0-0"
	total := 0

	for range maxReclaimRounds {
		msgs, next, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   c.cfg.Stream,
			Group:    c.cfg.Group,
			Consumer: c.cfg.Consumer,
			MinIdle:  c.cfg.ReclaimIdle,
			Start:    start,
			Count:    c.cfg.BatchSize,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				break
			}
			return total, errors.Join(ErrReclaim, err)
		}

		for _, msg := range msgs {
			c.process(ctx, msg)
			total++
		}

		if next == "0-0" || next == "" || len(msgs) == 0 {
			break
		}
		start = next
	}

	if total > 0 {
		c.logger.InfoContext(ctx, "reclaimed idle stream messages", logger.Count(total))
	}
	return total, nil
}
