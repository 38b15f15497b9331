package filter

import (
	"container/list"
	"sync"
)

// DefaultCacheSize is the number of compiled expressions a Compiler keeps.
const DefaultCacheSize = 100

// Compiler compiles filter expressions and keeps the most recently used
// programs, so repeated --filter values and long-running callers compile
// each expression once.
type Compiler struct {
	mu       sync.Mutex
	capacity int
	recent   *list.List // *ExprFilter values, most recently used first
	compiled map[string]*list.Element
}

// NewCompiler creates a Compiler caching up to size expressions
func NewCompiler(size int) *Compiler {
	return &Compiler{
		capacity: max(size, 1),
		recent:   list.New(),
		compiled: make(map[string]*list.Element),
	}
}

// Compile returns the compiled filter for expression, compiling it on first use.
// Invalid expressions are not cached.
func (c *Compiler) Compile(expression string) (*ExprFilter, error) {
	if f, ok := c.lookup(expression); ok {
		return f, nil
	}

	f, err := CompileExprFilter(expression)
	if err != nil {
		return nil, err
	}
	return c.store(f), nil
}

func (c *Compiler) lookup(expression string) (*ExprFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.compiled[expression]
	if !ok {
		return nil, false
	}
	c.recent.MoveToFront(el)
	return el.Value.(*ExprFilter), true
}

// store caches f unless another goroutine compiled the same expression
// first, in which case that filter is returned.
func (c *Compiler) store(f *ExprFilter) *ExprFilter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.compiled[f.expr]; ok {
		c.recent.MoveToFront(el)
		return el.Value.(*ExprFilter)
	}

	c.compiled[f.expr] = c.recent.PushFront(f)
	for c.recent.Len() > c.capacity {
		oldest := c.recent.Back()
		c.recent.Remove(oldest)
		delete(c.compiled, oldest.Value.(*ExprFilter).expr)
	}
	return f
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.recent.Len()
}
