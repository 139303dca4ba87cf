package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQdrant struct {
	results []SearchResult
	err     error

	docType string
	limit   int
}

func (f *fakeQdrant) InitCollection(ctx context.Context) error { return nil }

func (f *fakeQdrant) UpsertChunk(ctx context.Context, chunk ReferenceChunk, embedding []float32) error {
	return nil
}

func (f *fakeQdrant) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	f.docType = docType
	f.limit = limit
	return f.results, f.err
}

func (f *fakeQdrant) DeleteSource(ctx context.Context, source string) error { return nil }

func TestReferenceRetriever(t *testing.T) {
	q := &fakeQdrant{results: []SearchResult{{Score: 0.8, Text: "Prepare STAR stories."}}}
	r := NewReferenceRetriever(&fakeGemini{}, q, DocTypeInterviewGuide, 0, nil)

	got, err := r.Retrieve(context.Background(), "Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, "--- Context 1 (Score: 0.80) ---\nPrepare STAR stories.", got)
	assert.Equal(t, DocTypeInterviewGuide, q.docType)
	assert.Equal(t, 3, q.limit)
}

func TestReferenceRetrieverErrors(t *testing.T) {
	_, err := NewReferenceRetriever(&fakeGemini{embedErr: errors.New("quota")}, &fakeQdrant{}, DocTypeInterviewGuide, 3, nil).
		Retrieve(context.Background(), "job")
	assert.Error(t, err)

	_, err = NewReferenceRetriever(&fakeGemini{}, &fakeQdrant{err: errors.New("unavailable")}, DocTypeInterviewGuide, 3, nil).
		Retrieve(context.Background(), "job")
	assert.Error(t, err)
}

func TestReferenceRetrieverEmptyQuery(t *testing.T) {
	q := &fakeQdrant{}
	got, err := NewReferenceRetriever(&fakeGemini{}, q, DocTypeInterviewGuide, 3, nil).Retrieve(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, q.limit, "search must not run for an empty query")
}

func TestReferenceChunkPointIDIsStable(t *testing.T) {
	a := ReferenceChunk{Source: "guide.pdf", Index: 2}
	b := ReferenceChunk{Source: "guide.pdf", Index: 2, Text: "different text"}
	c := ReferenceChunk{Source: "guide.pdf", Index: 3}

	assert.Equal(t, a.PointID(), b.PointID())
	assert.NotEqual(t, a.PointID(), c.PointID())
}
