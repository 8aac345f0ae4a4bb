package monitor

import (
	"context"
	"fmt"
	"time"
)

const pauseMutation = `
mutation pauseMonitor($uuid: UUID!, $pause: Boolean!) {
  pauseMonitor(uuid: $uuid, pause: $pause) {
    uuid
  }
}`

// PauseUnpause pauses a monitor and unpauses it again, with a courtesy delay
// between the two mutations so the service is not hammered back to back. The
// round trip succeeds when both normalized responses are free of errors.
func (c *Catalog) PauseUnpause(ctx context.Context, uuid string) error {
	c.logger.Info("pausing monitor", "uuid", uuid)
	pauseRes, err := c.transport.Execute(ctx, pauseMutation, map[string]any{"uuid": uuid, "pause": true})
	if err != nil {
		return fmt.Errorf("pause monitor %s: %w", uuid, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.pauseDelay):
	}

	c.logger.Info("unpausing monitor", "uuid", uuid)
	unpauseRes, err := c.transport.Execute(ctx, pauseMutation, map[string]any{"uuid": uuid, "pause": false})
	if err != nil {
		return fmt.Errorf("unpause monitor %s: %w", uuid, err)
	}

	if hasErrors(pauseRes) || hasErrors(unpauseRes) {
		return fmt.Errorf("pause round trip for %s: %w", uuid, ErrRejected)
	}
	c.logger.Info("paused and unpaused monitor", "uuid", uuid)
	return nil
}
