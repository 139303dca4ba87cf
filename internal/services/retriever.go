package services

import (
	"context"
	"fmt"
	"strings"

	"alfredoptarigan/interview-coach/internal/metrics"
)

// ContextRetriever looks up reference material relevant to a query. An
// empty string means nothing relevant was found.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) (string, error)
}

type referenceRetriever struct {
	gemini  GeminiService
	qdrant  QdrantService
	docType string
	limit   int
	metrics *metrics.Metrics
}

func NewReferenceRetriever(gemini GeminiService, qdrant QdrantService, docType string, limit int, m *metrics.Metrics) ContextRetriever {
	if limit <= 0 {
		limit = 3
	}
	return &referenceRetriever{
		gemini:  gemini,
		qdrant:  qdrant,
		docType: docType,
		limit:   limit,
		metrics: m,
	}
}

// Retrieve implements ContextRetriever.
func (r *referenceRetriever) Retrieve(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", nil
	}

	done := r.metrics.Time("gemini", "embed_query")
	embedding, err := r.gemini.GenerateEmbedding(ctx, query)
	done()
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}

	done = r.metrics.Time("qdrant", "search")
	results, err := r.qdrant.SearchSimilar(ctx, embedding, r.docType, r.limit)
	done()
	if err != nil {
		return "", fmt.Errorf("failed to search reference material: %w", err)
	}

	return FormatRAGContext(results), nil
}
