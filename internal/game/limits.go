package game

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1  // context cancelled
	StopMovetime  StopReason = 2
	StopNodes     StopReason = 4
	StopDepth     StopReason = 8  // reached the requested depth
	StopDecided   StopReason = 16 // forced win or loss found before the depth limit
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}
	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopNodes, "Nodes"},
		{StopDepth, "Depth"},
		{StopDecided, "Decided"},
	}
	var parts []string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			parts = append(parts, r.name)
		}
	}
	return strings.Join(parts, "|")
}

// Limits bounds one search. Zero Nodes or Movetime means no such limit.
type Limits struct {
	Depth    int           `json:"depth"`
	Nodes    uint64        `json:"nodes"`
	Movetime time.Duration `json:"movetime"`
}

const DefaultDepthLimit = 3

func DefaultLimits() Limits {
	return Limits{Depth: DefaultDepthLimit}
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return strings.TrimSpace(builder.String())
}

// Bounded reports whether a time or node budget is set.
func (l Limits) Bounded() bool { return l.Nodes > 0 || l.Movetime > 0 }

func (l Limits) SetDepth(depth int) Limits {
	l.Depth = max(depth, 1)
	return l
}

func (l Limits) SetNodes(nodes uint64) Limits {
	l.Nodes = nodes
	return l
}

func (l Limits) SetMovetime(d time.Duration) Limits {
	l.Movetime = d
	return l
}

// limiter 在搜索过程中判断预算是否耗尽；多个 worker 共用
type limiter struct {
	ctx      context.Context
	start    time.Time
	deadline time.Time
	maxNodes uint64

	stop   atomic.Bool
	reason atomic.Int32
}

func newLimiter(ctx context.Context, l Limits) *limiter {
	lm := &limiter{ctx: ctx, start: time.Now(), maxNodes: l.Nodes}
	if l.Movetime > 0 {
		lm.deadline = lm.start.Add(l.Movetime)
	}
	return lm
}

func (lm *limiter) stopped() bool { return lm.stop.Load() }

func (lm *limiter) halt(r StopReason) {
	for {
		old := lm.reason.Load()
		if lm.reason.CompareAndSwap(old, old|int32(r)) {
			break
		}
	}
	lm.stop.Store(true)
}

// check 由节点计数每 1024 个节点调用一次，也在根节点每个候选之间调用
func (lm *limiter) check(nodes uint64) bool {
	if lm.stop.Load() {
		return true
	}
	if lm.ctx != nil && lm.ctx.Err() != nil {
		lm.halt(StopInterrupt)
		return true
	}
	if !lm.deadline.IsZero() && time.Now().After(lm.deadline) {
		lm.halt(StopMovetime)
		return true
	}
	if lm.maxNodes > 0 && nodes >= lm.maxNodes {
		lm.halt(StopNodes)
		return true
	}
	return false
}

func (lm *limiter) StopReason() StopReason { return StopReason(lm.reason.Load()) }

func (lm *limiter) elapsed() time.Duration { return time.Since(lm.start) }
