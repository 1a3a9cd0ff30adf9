package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/shipyard/internal/telemetry"
)

// ValidateFleet validates several players' ships at once. Ships share no
// state, so each runs in its own goroutine. Results are in ship order.
func ValidateFleet(ctx context.Context, ships []*Ship) ([]Result, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.fleet")
	defer span.End()
	span.SetAttributes(attribute.Int("ships", len(ships)))

	results := make([]Result, len(ships))
	g, ctx := errgroup.WithContext(ctx)
	for i, ship := range ships {
		i, ship := i, ship
		g.Go(func() error {
			result, err := ship.Validate(ctx)
			if err != nil {
				return fmt.Errorf("validate %s: %w", ship.Player, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return results, err
	}
	return results, nil
}
