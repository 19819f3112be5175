// Package entity はinventoryフィーチャーのドメインモデルを定義します。
package entity

// Store はラベルごとの在庫数マッピングです。
// サイクルをまたいで永続化される唯一のエンティティで、クラスマップの全ラベルを
// 含む必要はありません（初出のラベルは遅延初期化されます）。
// 在庫数は負になり得ます。検出器の誤りを隠さず、補正は人間のオペレーターに委ねます。
type Store map[string]int

// Clone はストアのコピーを返します。nilレシーバーは空ストアとして扱います。
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for label, count := range s {
		out[label] = count
	}
	return out
}
