// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// fencePoll is the interval between fence polls in
// WaitFences.
const fencePoll = 250 * time.Microsecond

// fenceSync implements driver.Fence.
// It wraps a sync object inserted by Submit.
type fenceSync struct {
	d        *Driver
	sync     uintptr
	signaled bool
}

// NewFence creates a new fence.
func (d *Driver) NewFence(signaled bool) (driver.Fence, error) {
	return &fenceSync{d: d, signaled: signaled}, nil
}

// signal inserts a sync object that is signaled once every
// command issued so far completes.
func (f *fenceSync) signal() {
	if f.sync != 0 {
		f.d.n.DeleteSync(f.sync)
	}
	f.sync = f.d.n.FenceSync()
	f.signaled = false
}

// poll waits up to timeout for the sync object.
// It reports whether the fence is signaled.
func (f *fenceSync) poll(timeout time.Duration) bool {
	if f.signaled {
		return true
	}
	if f.sync == 0 {
		return false
	}
	switch f.d.n.ClientWaitSync(f.sync, SYNC_FLUSH_COMMANDS_BIT, uint64(timeout.Nanoseconds())) {
	case ALREADY_SIGNALED, CONDITION_SATISFIED:
		f.d.n.DeleteSync(f.sync)
		f.sync = 0
		f.signaled = true
	case WAIT_FAILED:
		f.d.val.report(SevError, "fence wait failed")
	}
	return f.signaled
}

// Signaled returns whether the fence is signaled.
func (f *fenceSync) Signaled() bool { return f.poll(0) }

// Reset unsignals the fence.
func (f *fenceSync) Reset() error {
	if f.sync != 0 {
		f.d.n.DeleteSync(f.sync)
		f.sync = 0
	}
	f.signaled = false
	return nil
}

// Destroy destroys the fence.
func (f *fenceSync) Destroy() {
	if f == nil || f.d == nil {
		return
	}
	if f.sync != 0 {
		f.d.n.DeleteSync(f.sync)
	}
	*f = fenceSync{}
}

// event implements driver.Event.
// Commands execute as they are recorded, so an event is a
// host flag.
type event struct {
	set bool
}

// NewEvent creates a new event.
func (d *Driver) NewEvent() (driver.Event, error) { return &event{}, nil }

func (e *event) Set()        { e.set = true }
func (e *event) Reset()      { e.set = false }
func (e *event) IsSet() bool { return e.set }
func (e *event) Destroy()    {}

// SetEvent sets ev.
func (c *cmdBuffer) SetEvent(ev driver.Event) {
	if c.recording("SetEvent") {
		ev.Set()
	}
}

// ResetEvent resets ev.
func (c *cmdBuffer) ResetEvent(ev driver.Event) {
	if c.recording("ResetEvent") {
		ev.Reset()
	}
}

// queryPool implements driver.QueryPool.
// Only occlusion queries are supported.
type queryPool struct {
	d     *Driver
	query []uint32
}

// NewQueryPool creates a new query pool.
func (d *Driver) NewQueryPool(typ driver.QueryType, n int) (driver.QueryPool, error) {
	switch typ {
	case driver.QOcclusion:
	case driver.QTimestamp:
		return nil, errors.Mark(errors.New("gl: timestamp queries"), driver.ErrUnsupported)
	case driver.QPipelineStats:
		return nil, errors.Mark(errors.New("gl: pipeline statistics queries"), driver.ErrUnsupported)
	default:
		return nil, errors.Newf("gl: invalid query type %d", typ)
	}
	if n <= 0 {
		return nil, errors.New("gl: query pool must have at least one query")
	}
	qp := &queryPool{d: d, query: make([]uint32, n)}
	for i := range qp.query {
		qp.query[i] = d.n.CreateQuery(SAMPLES_PASSED)
	}
	return qp, nil
}

// Result returns the number of samples that passed during
// query index.
// It blocks until the result is available.
func (qp *queryPool) Result(index int) (uint64, error) {
	if index < 0 || index >= len(qp.query) {
		return 0, errors.Newf("gl: query index %d out of range", index)
	}
	return qp.d.n.GetQueryObjectui64(qp.query[index], QUERY_RESULT), nil
}

// Destroy destroys the query pool.
func (qp *queryPool) Destroy() {
	if qp == nil || qp.d == nil {
		return
	}
	for _, q := range qp.query {
		qp.d.n.DeleteQuery(q)
	}
	*qp = queryPool{}
}

// BeginQuery begins a query.
func (c *cmdBuffer) BeginQuery(qp driver.QueryPool, index int) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	p := qp.(*queryPool)
	if index < 0 || index >= len(p.query) {
		return errors.Newf("gl: query index %d out of range", index)
	}
	if c.query != nil {
		return errors.New("gl: a query is already active")
	}
	c.d.n.BeginQuery(SAMPLES_PASSED, p.query[index])
	c.query = p
	c.queryIdx = index
	return nil
}

// EndQuery ends a query.
func (c *cmdBuffer) EndQuery(qp driver.QueryPool, index int) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	if c.query != qp.(*queryPool) || c.queryIdx != index {
		return errors.Newf("gl: query %d is not active", index)
	}
	c.d.n.EndQuery(SAMPLES_PASSED)
	c.query = nil
	return nil
}
