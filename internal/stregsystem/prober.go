package stregsystem

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krestenlaust/fappen/internal/domain"
)

// API is the client surface the prober needs.
type API interface {
	Ping(ctx context.Context) error
	ActiveProducts(ctx context.Context, roomID int) (*domain.Catalogue, error)
}

var accessStatusGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "stregsystem_access_status",
	Help: "Result of the last access probe (0=unavailable, 1=service only, 2=api available)",
})

// Prober sequences the two availability checks into a tri-state status.
type Prober struct {
	api    API
	roomID int
	logger *slog.Logger
}

// NewProber creates a prober that checks API availability against the
// given default room.
func NewProber(api API, roomID int, logger *slog.Logger) *Prober {
	return &Prober{
		api:    api,
		roomID: roomID,
		logger: logger,
	}
}

// Check probes the service root and then the API. Errors are mapped to a
// sentinel status and logged, never returned: callers use the result to
// pick a presentation state, not to diagnose network problems. The two
// requests are sequential because the second only makes sense after
// interpreting the first.
func (p *Prober) Check(ctx context.Context) domain.AccessStatus {
	status := p.check(ctx)
	accessStatusGauge.Set(float64(status))
	return status
}

func (p *Prober) check(ctx context.Context) domain.AccessStatus {
	if err := p.api.Ping(ctx); err != nil {
		p.logger.WarnContext(ctx, "service root unreachable",
			slog.String("error", err.Error()),
		)
		return domain.AccessUnavailable
	}

	if _, err := p.api.ActiveProducts(ctx, p.roomID); err != nil {
		// Service is up but the API is not; this never downgrades to
		// unavailable.
		p.logger.WarnContext(ctx, "service reachable but api probe failed",
			slog.Int("room_id", p.roomID),
			slog.String("error", err.Error()),
		)
		return domain.AccessServiceOnly
	}

	return domain.AccessAPIAvailable
}
