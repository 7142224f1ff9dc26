package stregsystem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krestenlaust/fappen/internal/domain"
	"github.com/krestenlaust/fappen/pkg/logger"
)

type fakeAPI struct {
	pingErr     error
	productsErr error

	pingCalls     int
	productsCalls int
	gotRoomID     int
}

func (f *fakeAPI) Ping(ctx context.Context) error {
	f.pingCalls++
	return f.pingErr
}

func (f *fakeAPI) ActiveProducts(ctx context.Context, roomID int) (*domain.Catalogue, error) {
	f.productsCalls++
	f.gotRoomID = roomID
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return domain.NewCatalogue([]domain.Product{{ID: 1, Name: "Øl", Price: 600}}), nil
}

func TestProber_BothSucceed(t *testing.T) {
	api := &fakeAPI{}
	prober := NewProber(api, 10, logger.New("test", "error"))

	status := prober.Check(context.Background())

	assert.Equal(t, domain.AccessAPIAvailable, status)
	assert.Equal(t, 10, api.gotRoomID)
}

func TestProber_RootFailsSkipsSecondProbe(t *testing.T) {
	api := &fakeAPI{pingErr: errors.New("connection refused")}
	prober := NewProber(api, 10, logger.New("test", "error"))

	status := prober.Check(context.Background())

	assert.Equal(t, domain.AccessUnavailable, status)
	assert.Equal(t, 1, api.pingCalls)
	assert.Equal(t, 0, api.productsCalls, "second probe must not be issued")
}

func TestProber_APIProbeFailureDegradesToServiceOnly(t *testing.T) {
	api := &fakeAPI{productsErr: errors.New("501 not implemented")}
	prober := NewProber(api, 10, logger.New("test", "error"))

	status := prober.Check(context.Background())

	assert.Equal(t, domain.AccessServiceOnly, status)
}

func TestProber_NeverReturnsError(t *testing.T) {
	// Transport-level failures resolve to the sentinel status; Check has no
	// error return at all, so the property is that it does not panic.
	api := &fakeAPI{pingErr: errors.New("dial tcp: network unreachable")}
	prober := NewProber(api, 10, logger.New("test", "error"))

	assert.NotPanics(t, func() {
		status := prober.Check(context.Background())
		assert.Equal(t, domain.AccessUnavailable, status)
	})
}
