package refdata

import (
	"time"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
)

// Observer receives cache events for metrics
type Observer interface {
	// Read is called on every Get; fresh is false when the read triggered a fetch
	Read(resource reference.Resource, fresh bool)
	Fetched(resource reference.Resource, elapsed time.Duration, err error)
	// Discarded is called when a superseded response is dropped
	Discarded(resource reference.Resource)
	Sessions(n int)
}

// NopObserver ignores all events
type NopObserver struct{}

func (NopObserver) Read(reference.Resource, bool)                    {}
func (NopObserver) Fetched(reference.Resource, time.Duration, error) {}
func (NopObserver) Discarded(reference.Resource)                     {}
func (NopObserver) Sessions(int)                                     {}
