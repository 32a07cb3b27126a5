package cribbage

// Category names a scoring source. The names are a stable contract:
// exporters and reports key on them directly.
type Category string

// Count-phase categories.
const (
	CategoryFifteens Category = "fifteens"
	CategoryPairs    Category = "pairs"
	CategoryRuns     Category = "runs"
	CategoryFlush    Category = "flush"
	CategoryNobs     Category = "nobs"
)

// Play-phase categories.
const (
	CategoryPlayFifteen   Category = "play-fifteen"
	CategoryPlayPair      Category = "play-pair"
	CategoryPlayRun       Category = "play-run"
	CategoryPlayGo        Category = "play-go"
	CategoryPlayThirtyOne Category = "play-thirty-one"
)

// CategoryHeels is the dealer's two for cutting a Jack. It is neither a
// count-phase nor a play-phase category; game aggregation tallies it
// with play points since it lands before counting begins.
const CategoryHeels Category = "heels"

// Breakdown maps scoring categories to the points they contributed for
// one scoring event. Values are non-negative and sum to the total
// awarded; the engine only ever credits points that appear here.
type Breakdown map[Category]int

// Total returns the sum of all category points.
func (b Breakdown) Total() int {
	total := 0
	for _, pts := range b {
		total += pts
	}
	return total
}

// Get returns the points for a category, zero when absent.
func (b Breakdown) Get(c Category) int {
	return b[c]
}

func (b Breakdown) add(c Category, pts int) {
	if pts > 0 {
		b[c] += pts
	}
}
