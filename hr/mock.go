package hr

import (
	"context"
	"io"
	"math"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nomemory/lambdas/stream"
)

// Mock fabricates manager records. The same seed always yields the same
// sequence of records, ids are sequential starting at 1.
type Mock struct {
	seed   uint64
	faker  *gofakeit.Faker
	nextID int64
}

func NewMock(seed uint64) *Mock {
	return &Mock{seed: seed, faker: gofakeit.New(seed)}
}

// Manager fabricates the next manager record.
func (m *Mock) Manager() Manager {
	m.nextID++
	return Manager{
		ID:   m.nextID,
		Name: m.faker.Name(),
		// faker job levels double as department names
		Department: m.faker.JobLevel(),
		Salary:     math.Round(m.faker.Float64Range(45000, 250000)*100) / 100,
	}
}

// Managers fabricates the next n manager records.
func (m *Mock) Managers(n int) []Manager {
	ret := make([]Manager, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, m.Manager())
	}
	return ret
}

// ManagerStream creates a lazy stream of n fabricated records. Records are
// fabricated on demand, nothing is buffered. The stream restarts from the
// mock's seed on every collection, so collecting twice yields the same
// records regardless of what was fabricated from the mock in between.
func (m *Mock) ManagerStream(n int) stream.Stream[Manager] {
	return stream.NewStream(&managerStreamProvider{seed: m.seed, n: n})
}

type managerStreamProvider struct {
	seed    uint64
	n       int
	mock    *Mock
	emitted int
}

func (p *managerStreamProvider) Open(_ context.Context) error {
	p.mock = NewMock(p.seed)
	p.emitted = 0
	return nil
}

func (p *managerStreamProvider) Close() {
	p.mock = nil
}

func (p *managerStreamProvider) Emit(_ context.Context) (Manager, error) {
	if p.emitted >= p.n {
		return Manager{}, io.EOF
	}
	p.emitted++
	return p.mock.Manager(), nil
}
