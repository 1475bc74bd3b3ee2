// file: internal/game/evaluate.go
package game

// WinScore 已连通局面的分值；远大于任何启发式分数
const WinScore = 1_000_000

// Weights 启发式权重
type Weights struct {
	Path   int `yaml:"path" json:"path"`     // 最短完成距离之差
	Group  int `yaml:"group" json:"group"`   // 最大连通块之差
	Jitter int `yaml:"jitter" json:"jitter"` // 确定性扰动幅度，0 关闭
}

func DefaultWeights() Weights {
	return Weights{Path: 10, Group: 1, Jitter: 0}
}

// Breakdown is the itemised static evaluation from Player1's point of view.
type Breakdown struct {
	Winner  CellState
	DistP1  int
	DistP2  int
	GroupP1 int
	GroupP2 int
	Jitter  int
	Total   int
}

// Evaluator scores positions. Scores are cached by fingerprint from
// Player1's perspective and negated for Player2, so
// Evaluate(b, Player1) == -Evaluate(b, Player2) always holds.
type Evaluator struct {
	hasher *Zobrist
	cache  *EvalCache
	w      Weights
	seed   uint64
}

// NewEvaluator: hasher 和 cache 都可以为 nil（不缓存）
func NewEvaluator(hasher *Zobrist, cache *EvalCache, w Weights, seed uint64) *Evaluator {
	return &Evaluator{hasher: hasher, cache: cache, w: w, seed: seed}
}

func (e *Evaluator) Weights() Weights { return e.w }

func (e *Evaluator) Cache() *EvalCache { return e.cache }

// Evaluate returns the score of b from side's perspective.
func (e *Evaluator) Evaluate(b *Board, side CellState) int {
	if e.hasher == nil {
		return orient(e.Explain(b, 0).Total, side)
	}
	fp, err := e.hasher.Fingerprint(b)
	if err != nil {
		// 尺寸不符：不走缓存，直接算
		return orient(e.Explain(b, 0).Total, side)
	}
	return e.EvaluateFP(b, fp, side)
}

// EvaluateFP is Evaluate with a precomputed fingerprint of b.
func (e *Evaluator) EvaluateFP(b *Board, fp uint64, side CellState) int {
	if e.cache != nil {
		if v, ok := e.cache.Get(fp); ok {
			return orient(v, side)
		}
	}
	v := e.Explain(b, fp).Total
	if e.cache != nil {
		e.cache.Put(fp, v)
	}
	return orient(v, side)
}

// Explain computes the uncached evaluation of b, Player1's perspective.
func (e *Evaluator) Explain(b *Board, fp uint64) Breakdown {
	var bd Breakdown
	switch {
	case HasConnection(b, Player1):
		bd.Winner, bd.Total = Player1, WinScore
		return bd
	case HasConnection(b, Player2):
		bd.Winner, bd.Total = Player2, -WinScore
		return bd
	}

	n := len(b.Cells)
	bd.DistP1 = clampDist(ShortestCompletionDistance(b, Player1), n)
	bd.DistP2 = clampDist(ShortestCompletionDistance(b, Player2), n)
	if e.w.Group != 0 {
		bd.GroupP1 = LargestGroup(b, Player1)
		bd.GroupP2 = LargestGroup(b, Player2)
	}
	if e.w.Jitter > 0 && e.hasher != nil {
		bd.Jitter = int(splitmix64(fp^e.seed)%uint64(2*e.w.Jitter+1)) - e.w.Jitter
	}
	bd.Total = e.w.Path*(bd.DistP2-bd.DistP1) + e.w.Group*(bd.GroupP1-bd.GroupP2) + bd.Jitter
	return bd
}

// 被完全封死时按 n+1 处理，保持分差有限
func clampDist(d, n int) int {
	if d == Unreachable {
		return n + 1
	}
	return d
}

func orient(p1Score int, side CellState) int {
	if side == Player2 {
		return -p1Score
	}
	return p1Score
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
