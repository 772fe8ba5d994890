package watchlist

import (
	"context"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/domain/watchlist"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/logger"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// WatchlistService manages the articles pinned on the availability dashboard
type WatchlistService struct {
	repo watchlist.Repository
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(repo watchlist.Repository) *WatchlistService {
	return &WatchlistService{repo: repo}
}

// List returns every entry ordered by position
func (s *WatchlistService) List(ctx context.Context) ([]EntryResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}

// Create pins an article at a free position
func (s *WatchlistService) Create(ctx context.Context, req CreateEntryRequest) (*EntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "watchlist", "create",
		telemetry.WithAttribute(telemetry.SpanAttrPosition, req.Position),
	)
	defer span.End()

	entry, err := watchlist.NewEntry(req.Position, req.Code, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Watchlist entry created",
		zap.Int("position", entry.Position),
		zap.String("code", entry.Code),
	)
	resp := ToEntryResponse(*entry)
	return &resp, nil
}

// Update relabels the entry at position
func (s *WatchlistService) Update(ctx context.Context, position int, req UpdateEntryRequest) (*EntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "watchlist", "update",
		telemetry.WithAttribute(telemetry.SpanAttrPosition, position),
	)
	defer span.End()

	if err := validPosition(position); err != nil {
		return nil, err
	}
	entry, err := s.repo.FindByPosition(ctx, position)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := entry.Relabel(req.Code, req.Description); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Watchlist entry updated",
		zap.Int("position", entry.Position),
		zap.String("code", entry.Code),
	)
	resp := ToEntryResponse(*entry)
	return &resp, nil
}

// Delete removes the entry at position and closes the gap it leaves
func (s *WatchlistService) Delete(ctx context.Context, position int) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "watchlist", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrPosition, position),
	)
	defer span.End()

	if err := validPosition(position); err != nil {
		return err
	}
	if err := s.repo.DeleteAndRenumber(ctx, position); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Info("Watchlist entry deleted", zap.Int("position", position))
	return nil
}

// Swap exchanges the two positions named by req
func (s *WatchlistService) Swap(ctx context.Context, req SwapRequest) error {
	if len(req.Items) != 2 {
		return shared.ErrValidation.WithMessage("Exactly two positions are required")
	}
	a, b := req.Items[0].Position, req.Items[1].Position

	ctx, span := telemetry.StartServiceSpan(ctx, "watchlist", "swap")
	defer span.End()
	telemetry.SetAttributes(span, "mrp.watchlist_position_a", a, "mrp.watchlist_position_b", b)

	if err := watchlist.ValidateSwap(a, b); err != nil {
		return err
	}
	if err := s.repo.Swap(ctx, a, b); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Info("Watchlist positions swapped", zap.Int("a", a), zap.Int("b", b))
	return nil
}

func validPosition(position int) error {
	if position <= 0 || position >= watchlist.ParkingPosition {
		return shared.ErrValidation.WithMessage("Position must be a positive integer")
	}
	return nil
}
