// Package gemini はGoogle Gemini APIを使用したスキャンサマリー生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"shelf_backend/internal/feature/reconcile/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiSummarizer はGoogle Gemini APIを使用してスキャン結果のサマリーを生成します。
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// GeminiSummarizerがSummarizerを実装していることをコンパイル時に検証します。
var _ usecase.Summarizer = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer はADCを使用してGeminiSummarizerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiSummarizer(ctx context.Context) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, model: DefaultModel}, nil
}

// Summarize はプロンプトからサマリー文を生成します。
func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
