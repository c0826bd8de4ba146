package store

import (
	"strconv"
	"sync"

	"todo-list/internal/domain"

	"github.com/google/uuid"
)

// IDGenerator produces ids for new tasks. Ids must be unique within a store.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

// UUIDGenerator issues time-ordered UUIDv7 strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator issues decimal ids from a monotonic counter.
type SequenceGenerator struct {
	mu   sync.Mutex
	next int64
}

// NewSequenceGenerator starts the sequence at start.
func NewSequenceGenerator(start int64) *SequenceGenerator {
	if start < 1 {
		start = 1
	}
	return &SequenceGenerator{next: start}
}

// NewSequenceGeneratorAfter starts after the largest numeric id in tasks,
// so a restarted process never reissues a stored id.
func NewSequenceGeneratorAfter(tasks []domain.Task) *SequenceGenerator {
	var max int64
	for _, task := range tasks {
		if n, err := strconv.ParseInt(task.ID, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return NewSequenceGenerator(max + 1)
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next
	g.next++
	return strconv.FormatInt(id, 10)
}

// Strategy names accepted in configuration.
const (
	StrategyUUID     = "uuid"
	StrategySequence = "sequence"
)
