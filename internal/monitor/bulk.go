package monitor

import "context"

// Producer turns a monitor's detailed configuration into the partial updates
// to apply. A nil or empty result means "nothing to do for this monitor".
type Producer func(Detail) Updates

// Tally is the authoritative summary of a bulk run.
type Tally struct {
	Succeeded int
	Failed    int
}

// BulkUpdate applies a producer's updates to each monitor in turn. The loop
// is strictly sequential and never stops early: a failed detail fetch counts
// as a failure, an empty producer result is a silent skip, and every update
// failure is logged against its monitor before moving on.
func (c *Catalog) BulkUpdate(ctx context.Context, monitors []Summary, produce Producer) Tally {
	var tally Tally

	for _, m := range monitors {
		c.logger.Info("processing monitor", "uuid", m.UUID)

		detail, err := c.Details(ctx, m)
		if err != nil || len(detail) == 0 {
			c.logger.Error("skipping monitor, details unavailable", "uuid", m.UUID, "error", err)
			tally.Failed++
			continue
		}

		updates := produce(detail)
		if len(updates) == 0 {
			c.logger.Info("no updates required", "uuid", m.UUID)
			continue
		}

		if _, err := c.ApplyUpdate(ctx, detail, updates); err != nil {
			c.logger.Error("failed to update monitor", "uuid", m.UUID, "error", err)
			tally.Failed++
			continue
		}
		c.logger.Info("updated monitor", "uuid", m.UUID)
		tally.Succeeded++
	}

	c.logger.Info("bulk update complete", "succeeded", tally.Succeeded, "failed", tally.Failed)
	return tally
}
