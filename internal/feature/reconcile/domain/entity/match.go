package entity

// MatchedPair はbefore検出とafter検出の対応付け1件です。
// BeforeとAfterはそれぞれのDetectionSet内のインデックスです。
type MatchedPair struct {
	Before   int     `json:"before"`
	After    int     `json:"after"`
	Distance float64 `json:"distance"`
}

// MatchResult はマッチング結果です。
// 各インデックスは高々1つのペアにのみ現れます。
type MatchResult struct {
	Pairs           []MatchedPair `json:"pairs"`
	UnmatchedBefore []int         `json:"unmatched_before"`
	UnmatchedAfter  []int         `json:"unmatched_after"`
}

// InventoryChanges はラベルごとの符号付き在庫増減です。
// 1サイクル内で同一ラベルの増減は整数加算で累積されます。
// 増減が発生したラベルのみエントリを持ちます（相殺して0になったものは残ります）。
type InventoryChanges map[string]int

// Add は指定ラベルの増減を累積します。
func (c InventoryChanges) Add(label string, delta int) {
	c[label] += delta
}

// Total は全ラベルの増減の合計を返します。
func (c InventoryChanges) Total() int {
	sum := 0
	for _, d := range c {
		sum += d
	}
	return sum
}
