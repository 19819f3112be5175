package entity

import "fmt"

// ClassMap は検出器のクラスIDと商品ラベルの対応表です。
// 起動時に一度ロードされ、照合サイクル中は読み取り専用です。
type ClassMap map[int]string

// Contains は指定クラスIDがマップに存在するかを返します。
func (m ClassMap) Contains(classID int) bool {
	_, ok := m[classID]
	return ok
}

// LabelOrID は指定クラスIDのラベルを返します。
// 未知のIDの場合は "ID:<n>" 形式のフォールバックラベルを返します。
func (m ClassMap) LabelOrID(classID int) string {
	if label, ok := m[classID]; ok {
		return label
	}
	return fmt.Sprintf("ID:%d", classID)
}

// IDForLabel はラベルからクラスIDを逆引きします。
// Cloud Visionのようにラベル名で検出結果を返す検出器のために使用します。
func (m ClassMap) IDForLabel(label string) (int, bool) {
	for id, l := range m {
		if l == label {
			return id, true
		}
	}
	return 0, false
}

// Labels は全ラベルをID昇順とは無関係の順序で返します。
func (m ClassMap) Labels() []string {
	labels := make([]string, 0, len(m))
	for _, l := range m {
		labels = append(labels, l)
	}
	return labels
}
