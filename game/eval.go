package game

// Evaluation weights. A corner is worth far more than a disk since it can
// never be flipped back.
const (
	DiscWeight     = 1
	MobilityWeight = 5
	CornerWeight   = 30
	XSquareWeight  = -10

	// FinalWeight scales the disk differential of a finished game so that
	// any proven win outranks every heuristic score.
	FinalWeight = 1000
)

var corners = [4]struct{ corner, xSquare int }{
	{index(0, 0), index(1, 1)},
	{index(0, Size-1), index(1, Size-2)},
	{index(Size-1, 0), index(Size-2, 1)},
	{index(Size-1, Size-1), index(Size-2, Size-2)},
}

// EvaluatePosition combines disk differential, mobility, corner occupancy and
// the liability of diagonal neighbors of empty corners, all from p's
// perspective.
func EvaluatePosition(b *Board, p Player) int {
	return DiscWeight*b.discScore(p) +
		MobilityWeight*b.mobilityScore(p) +
		b.cornerScore(p)
}

// EvaluateMobility only weighs disks and mobility.
func EvaluateMobility(b *Board, p Player) int {
	return DiscWeight*b.discScore(p) + MobilityWeight*b.mobilityScore(p)
}

// EvaluateDiscs is the plain disk differential.
func EvaluateDiscs(b *Board, p Player) int {
	return b.discScore(p)
}

// FinalScore scores a finished game by its disk differential.
func FinalScore(b *Board, p Player) int {
	return FinalWeight * b.discScore(p)
}

// Evaluators maps the names accepted on the command line to the built-in
// evaluation functions.
var Evaluators = map[string]Evaluate{
	"discs":    EvaluateDiscs,
	"mobility": EvaluateMobility,
	"position": EvaluatePosition,
}

func (b *Board) discScore(p Player) int {
	return b.Score(p) - b.Score(p.Opponent())
}

func (b *Board) mobilityScore(p Player) int {
	return b.Mobility(p) - b.Mobility(p.Opponent())
}

func (b *Board) cornerScore(p Player) int {
	own, opp := p.Cell(), p.Opponent().Cell()
	score := 0
	for _, c := range corners {
		switch b.cells[c.corner] {
		case own:
			score += CornerWeight
		case opp:
			score -= CornerWeight
		default:
			switch b.cells[c.xSquare] {
			case own:
				score += XSquareWeight
			case opp:
				score -= XSquareWeight
			}
		}
	}
	return score
}
