// game/ai.go
package game

import (
	"context"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// 节点计数先累积在局部变量里，每 1024 个同步一次
const nodeFlushEvery = 1024

// Options configure an Engine.
type Options struct {
	Limits        Limits
	Workers       int  // >1 开启根节点并行
	Iterative     bool // 有时间/节点预算时逐层加深
	CenterFirst   bool // 候选按离中心距离排序
	Weights       Weights
	Seed          uint64
	CacheCapacity int // 0 = 不限
}

func DefaultOptions() Options {
	return Options{
		Limits:    DefaultLimits(),
		Workers:   1,
		Iterative: true,
		Weights:   DefaultWeights(),
	}
}

type Option func(*Options)

func WithLimits(l Limits) Option      { return func(o *Options) { o.Limits = l } }
func WithDepth(d int) Option          { return func(o *Options) { o.Limits = o.Limits.SetDepth(d) } }
func WithWorkers(n int) Option        { return func(o *Options) { o.Workers = n } }
func WithIterative(on bool) Option    { return func(o *Options) { o.Iterative = on } }
func WithCenterFirst(on bool) Option  { return func(o *Options) { o.CenterFirst = on } }
func WithWeights(w Weights) Option    { return func(o *Options) { o.Weights = w } }
func WithSeed(seed uint64) Option     { return func(o *Options) { o.Seed = seed } }
func WithCacheCapacity(n int) Option  { return func(o *Options) { o.CacheCapacity = n } }
func WithOptions(opts Options) Option { return func(o *Options) { *o = opts } }

// Result describes one finished search.
type Result struct {
	Move    Position
	OK      bool // false: 没有合法着法或局面已结束
	Score   int  // 从搜索方视角
	Depth   int  // 最后一次完整（或首轮部分）完成的深度
	Nodes   uint64
	Elapsed time.Duration
	Stop    StopReason
	Cache   CacheStats
}

// Engine chooses moves with depth-limited minimax and alpha-beta pruning.
// The evaluation cache lives as long as the engine and is reset only when
// the board size changes. One search runs at a time.
type Engine struct {
	mu     sync.Mutex
	opts   Options
	hasher *Zobrist
	cache  *EvalCache
	eval   *Evaluator
}

func NewEngine(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Limits.Depth < 1 {
		o.Limits.Depth = 1
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Workers > runtime.NumCPU() {
		o.Workers = runtime.NumCPU()
	}
	return &Engine{opts: o, cache: NewEvalCache(o.CacheCapacity)}
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) SetLimits(l Limits) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l.Depth < 1 {
		l.Depth = 1
	}
	e.opts.Limits = l
}

func (e *Engine) Cache() *EvalCache { return e.cache }

// prepare 棋盘尺寸变化时重建哈希键并清空缓存
func (e *Engine) prepare(b *Board) {
	if e.hasher != nil && e.hasher.Matches(b) {
		return
	}
	if e.hasher != nil {
		r, c := e.hasher.Dimensions()
		log.Info().Int("old-rows", r).Int("old-cols", c).
			Int("rows", b.rows).Int("cols", b.cols).Msg("board-size-changed; clearing eval cache")
	}
	e.hasher = NewZobrist(b.rows, b.cols, e.opts.Seed)
	e.cache.Clear()
	e.eval = NewEvaluator(e.hasher, e.cache, e.opts.Weights, e.opts.Seed)
}

// Evaluate scores b for side with the engine's evaluator and cache.
func (e *Engine) Evaluate(b *Board, side CellState) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare(b)
	return e.eval.Evaluate(b, side)
}

// Explain returns the itemised static evaluation of b.
func (e *Engine) Explain(b *Board) Breakdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare(b)
	fp, _ := e.hasher.Fingerprint(b) // prepare 已按 b 的尺寸重建 hasher，不会出错
	return e.eval.Explain(b, fp)
}

// ChooseMove returns the best move for player, or false when the board is
// full or already decided. b is never modified.
func (e *Engine) ChooseMove(ctx context.Context, b *Board, player CellState) (Position, bool) {
	r := e.Search(ctx, b, player)
	return r.Move, r.OK
}

// Search runs a search with the engine's configured limits.
func (e *Engine) Search(ctx context.Context, b *Board, player CellState) Result {
	return e.SearchWithLimits(ctx, b, player, e.Options().Limits)
}

func (e *Engine) SearchWithLimits(ctx context.Context, b *Board, player CellState, l Limits) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l.Depth < 1 {
		l.Depth = 1
	}
	e.prepare(b)

	root := b.Clone() // 私有副本，调用方棋盘不会被改动
	fp, _ := e.hasher.Fingerprint(root) // 尺寸在 prepare 里已对齐
	s := &searcher{e: e, lim: newLimiter(ctx, l)}

	res := Result{}
	if !player.IsPlayer() || Winner(root) != Empty {
		res.Score = s.leaf(root, fp, player, 0)
		return s.finish(res, player)
	}
	moves := e.candidates(root)
	if len(moves) == 0 {
		res.Score = s.leaf(root, fp, player, 0)
		return s.finish(res, player)
	}

	startDepth := l.Depth
	if e.opts.Iterative && l.Bounded() {
		startDepth = 1
	}
	for depth := startDepth; depth <= l.Depth; depth++ {
		first := !res.OK
		k, score, aborted := s.searchRoot(root, fp, player, moves, depth, first)
		if aborted && !first {
			// 本轮未完成，沿用上一轮的结果
			break
		}
		res.Move, res.Score, res.Depth, res.OK = root.PositionOf(moves[k]), score, depth, true
		if aborted {
			break
		}
		if depth == l.Depth {
			s.lim.halt(StopDepth)
		} else if abs(score) >= WinScore {
			s.lim.halt(StopDecided)
			break
		}
	}
	return s.finish(res, player)
}

// candidates 候选着法：行优先，或中心优先（稳定）
func (e *Engine) candidates(b *Board) []int {
	if e.opts.CenterFirst {
		return GenerateMovesCenterFirst(b)
	}
	return GenerateMoves(b)
}

// searcher 保存一次搜索的共享状态
type searcher struct {
	e     *Engine
	lim   *limiter
	nodes atomic.Uint64
}

func (s *searcher) finish(res Result, player CellState) Result {
	res.Nodes = s.nodes.Load()
	res.Elapsed = s.lim.elapsed()
	res.Stop = s.lim.StopReason()
	res.Cache = s.e.cache.Stats()
	log.Debug().
		Str("player", player.String()).
		Bool("ok", res.OK).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Str("stop", res.Stop.String()).
		Float64("cache-hit-rate", res.Cache.HitRate()).
		Msg("search-done")
	return res
}

// count 节点计数；满 1024 同步到共享计数器并检查预算
func (s *searcher) count(local *int64) {
	*local++
	if *local >= nodeFlushEvery {
		total := s.nodes.Add(uint64(*local))
		*local = 0
		s.lim.check(total)
	}
}

func (s *searcher) flush(local *int64) {
	if *local > 0 {
		s.nodes.Add(uint64(*local))
		*local = 0
	}
}

// leaf 静态评估；胜负分按剩余深度修正，让更快的胜利得分更高
func (s *searcher) leaf(b *Board, fp uint64, original CellState, depth int) int {
	v := s.e.eval.EvaluateFP(b, fp, original)
	switch {
	case v >= WinScore:
		v += depth
	case v <= -WinScore:
		v -= depth
	}
	return v
}

// searchRoot 搜索根节点所有候选。first 为 true 时第一个候选不受预算限制，
// 保证总能返回一个合法着法。平分时保留最先枚举到的着法。
func (s *searcher) searchRoot(root *Board, fp uint64, player CellState, moves []int, depth int, first bool) (bestK, bestScore int, aborted bool) {
	if s.e.opts.Workers > 1 && len(moves) > 1 {
		return s.searchRootParallel(root, fp, player, moves, depth, first)
	}

	var local int64
	defer s.flush(&local)

	b := acquireBoard(root)
	defer releaseBoard(b)

	bestK, bestScore = -1, math.MinInt32
	alpha, beta := math.MinInt32, math.MaxInt32
	for k, i := range moves {
		bounded := !(first && k == 0)
		if bounded && s.lim.check(s.nodes.Load()) {
			return bestK, bestScore, true
		}
		score := s.child(b, fp, i, player, player, depth, alpha, beta, bounded, &local)
		if bounded && s.lim.stopped() {
			return bestK, bestScore, true
		}
		if bestK < 0 || score > bestScore {
			bestK, bestScore = k, score
		}
		if score > alpha {
			alpha = score
		}
	}
	return bestK, bestScore, false
}

// searchRootParallel 根节点并行：每个候选用完整窗口单独搜索，候选之间不剪枝
func (s *searcher) searchRootParallel(root *Board, fp uint64, player CellState, moves []int, depth int, first bool) (bestK, bestScore int, aborted bool) {
	type scored struct {
		score int
		done  bool
	}
	results := make([]scored, len(moves))

	g := errgroup.Group{}
	g.SetLimit(s.e.opts.Workers)
	for k, i := range moves {
		bounded := !(first && k == 0)
		g.Go(func() error {
			if bounded && s.lim.stopped() {
				return nil
			}
			var local int64
			b := acquireBoard(root) // 每个任务私有 Board
			score := s.child(b, fp, i, player, player, depth, math.MinInt32, math.MaxInt32, bounded, &local)
			releaseBoard(b)
			s.flush(&local)
			if bounded && s.lim.stopped() {
				return nil
			}
			results[k] = scored{score: score, done: true}
			return nil
		})
	}
	_ = g.Wait()

	bestK, bestScore = -1, math.MinInt32
	for k, r := range results {
		if !r.done {
			aborted = true
			continue
		}
		if bestK < 0 || r.score > bestScore {
			bestK, bestScore = k, r.score
		}
	}
	return bestK, bestScore, aborted
}

// child 在 b 上落子 i 并返回该子树的值，返回前撤销落子
func (s *searcher) child(b *Board, fp uint64, i int, current, original CellState, depth, alpha, beta int, bounded bool, local *int64) int {
	b.Cells[i] = current
	cfp := s.e.hasher.UpdateI(fp, i, current)
	var score int
	if HasConnection(b, current) {
		s.count(local)
		score = s.leaf(b, cfp, original, depth-1)
	} else {
		score = s.alphaBeta(b, cfp, Opponent(current), original, depth-1, alpha, beta, bounded, local)
	}
	// 每个分支都从同一个局面出发：撤销必须在唯一的 return 之前完成
	b.Cells[i] = Empty
	return score
}

// alphaBeta 以 original 视角返回分值；current 是当前行棋方
func (s *searcher) alphaBeta(
	b *Board,
	fp uint64,
	current, original CellState,
	depth int,
	alpha, beta int,
	bounded bool,
	local *int64,
) int {
	if bounded && s.lim.stopped() {
		return 0
	}
	s.count(local)

	if depth <= 0 {
		return s.leaf(b, fp, original, 0)
	}
	moves := s.e.candidates(b)
	if len(moves) == 0 {
		return s.leaf(b, fp, original, depth)
	}

	if current == original {
		// === MAX 节点 ===
		best := math.MinInt32
		for _, i := range moves {
			score := s.child(b, fp, i, current, original, depth, alpha, beta, bounded, local)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	// === MIN 节点 ===
	best := math.MaxInt32
	for _, i := range moves {
		score := s.child(b, fp, i, current, original, depth, alpha, beta, bounded, local)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// Minimax is the unpruned reference search over a private copy of b. It
// returns the same move and score as the pruned search at the same depth.
func (e *Engine) Minimax(b *Board, player CellState, depth int) (Position, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare(b)
	root := b.Clone()
	fp, _ := e.hasher.Fingerprint(root) // 同上，prepare 之后尺寸一致
	s := &searcher{e: e, lim: newLimiter(context.Background(), Limits{})}
	if !player.IsPlayer() || Winner(root) != Empty {
		return Position{}, s.leaf(root, fp, player, 0), false
	}
	moves := e.candidates(root)
	if len(moves) == 0 {
		return Position{}, s.leaf(root, fp, player, 0), false
	}
	bestK, best := -1, math.MinInt32
	for k, i := range moves {
		root.Cells[i] = player
		score := s.minimax(root, e.hasher.UpdateI(fp, i, player), player, player, depth)
		root.Cells[i] = Empty
		if bestK < 0 || score > best {
			bestK, best = k, score
		}
	}
	return root.PositionOf(moves[bestK]), best, true
}

// minimax 评估 mover 刚在 b 上落子之后的局面
func (s *searcher) minimax(b *Board, fp uint64, mover, original CellState, depth int) int {
	if HasConnection(b, mover) {
		return s.leaf(b, fp, original, depth-1)
	}
	depth--
	if depth <= 0 {
		return s.leaf(b, fp, original, 0)
	}
	moves := s.e.candidates(b)
	if len(moves) == 0 {
		return s.leaf(b, fp, original, depth)
	}
	current := Opponent(mover)
	best := math.MinInt32
	if current != original {
		best = math.MaxInt32
	}
	for _, i := range moves {
		b.Cells[i] = current
		score := s.minimax(b, s.e.hasher.UpdateI(fp, i, current), current, original, depth)
		b.Cells[i] = Empty
		if current == original {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}
