package solver

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunID identifies one call to Solve in logs and metrics.
type RunID string

type RunIDProvider interface {
	NextRunID() RunID
}

type UUIDProviderFn func() (uuid.UUID, error)

type UUIDRunIDProvider struct {
	nextUUIDFn UUIDProviderFn
}

func NewUUIDRunIDProvider() *UUIDRunIDProvider {
	return &UUIDRunIDProvider{
		nextUUIDFn: func() (uuid.UUID, error) { return uuid.NewRandom() },
	}
}

func NewCustomUUIDRunIDProvider(nextUUIDFn UUIDProviderFn) *UUIDRunIDProvider {
	return &UUIDRunIDProvider{
		nextUUIDFn: nextUUIDFn,
	}
}

func (p *UUIDRunIDProvider) NextRunID() RunID {
	id, err := p.nextUUIDFn()
	if err != nil {
		fallback := hex.EncodeToString([]byte(err.Error() + time.Now().String()))
		return RunID(fmt.Sprintf("%s (with error: %s)", fallback, err))
	}
	return RunID(id.String())
}

// CountingRunIDProvider hands out sequential ids, for tests and
// reproducible output.
type CountingRunIDProvider struct {
	prefix string
	next   int
}

func NewCountingRunIDProvider(prefix string) *CountingRunIDProvider {
	return &CountingRunIDProvider{prefix: prefix}
}

func (p *CountingRunIDProvider) NextRunID() RunID {
	p.next++
	return RunID(fmt.Sprintf("%s-%d", p.prefix, p.next))
}
