package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/services"
)

// Ingests interview-guide PDFs into the reference collection used when
// generating questions and cheatsheets.
//
//	go run ./scripts/ingest_documents.go -chunk 1000 -overlap 200 guides/*.pdf
func main() {
	chunkSize := flag.Int("chunk", 1000, "maximum characters per passage")
	overlap := flag.Int("overlap", 200, "characters shared between neighbouring passages")
	replace := flag.Bool("replace", true, "remove earlier passages of each document before ingesting")
	flag.Parse()

	cfg := config.Load()

	zapLog, err := config.NewLogger(cfg.Server.Env)
	if err != nil {
		panic(err)
	}
	defer zapLog.Sync()

	paths := flag.Args()
	if len(paths) == 0 {
		zapLog.Fatal("❌ No documents given. Pass one or more PDF paths.")
	}
	if cfg.Qdrant.URL == "" {
		zapLog.Fatal("❌ QDRANT_URL is not set")
	}

	zapLog.Info("🚀 Starting document ingestion...", zap.Int("documents", len(paths)))

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, zapLog)
	if err != nil {
		zapLog.Fatal("❌ Failed to initialize Gemini", zap.Error(err))
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, zapLog)
	if err != nil {
		zapLog.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
	}

	ctx := context.Background()
	if err := qdrantService.InitCollection(ctx); err != nil {
		zapLog.Fatal("❌ Failed to initialize collection", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	successCount := 0
	failCount := 0

	for _, path := range paths {
		source := filepath.Base(path)
		docLog := zapLog.With(zap.String("source", source))

		if _, err := os.Stat(path); os.IsNotExist(err) {
			docLog.Warn("⚠️ File not found, skipping")
			failCount++
			continue
		}

		content, err := pdfParser.ExtractTextWithMetaData(path)
		if err != nil {
			docLog.Error("❌ Failed to extract text", zap.Error(err))
			failCount++
			continue
		}
		docLog.Info("📖 Extracted text", zap.Int("pages", content.PageCount), zap.Int("chars", len(content.Text)))

		chunks := chunker.ChunkText(services.CleanText(content.Text), *chunkSize, *overlap)
		if len(chunks) == 0 {
			docLog.Warn("⚠️ No text to ingest, skipping")
			failCount++
			continue
		}

		if *replace {
			if err := qdrantService.DeleteSource(ctx, source); err != nil {
				docLog.Error("❌ Failed to remove earlier passages", zap.Error(err))
				failCount++
				continue
			}
		}

		stored := 0
		for i, text := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, text)
			if err != nil {
				docLog.Error("❌ Failed to generate embedding", zap.Int("chunk", i), zap.Error(err))
				continue
			}

			chunk := services.ReferenceChunk{
				Source:  source,
				DocType: services.DocTypeInterviewGuide,
				Index:   i,
				Text:    text,
			}
			if err := qdrantService.UpsertChunk(ctx, chunk, embedding); err != nil {
				docLog.Error("❌ Failed to store chunk", zap.Int("chunk", i), zap.Error(err))
				continue
			}
			stored++
		}

		if stored < len(chunks) {
			docLog.Warn("⚠️ Document partially ingested", zap.Int("stored", stored), zap.Int("chunks", len(chunks)))
			failCount++
			continue
		}

		docLog.Info("✅ Document ingested", zap.Int("chunks", stored))
		successCount++
	}

	zapLog.Info("📊 Ingestion summary",
		zap.Int("successful", successCount),
		zap.Int("failed", failCount),
		zap.String("collection", cfg.Qdrant.Collection),
	)

	if failCount > 0 {
		zapLog.Error("⚠️ Some documents failed to ingest: " + strings.Join(paths, ", "))
		os.Exit(1)
	}
}
