// Package pipeline orchestrates the crawl, chunk, embed, index, and answer
// stages on top of the domain collaborators.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sitekb/sitekb"
)

const answerSystemPrompt = `You are a helpful assistant that answers questions based only on the provided context.

Rules:
1. Answer questions using ONLY the information provided in the context below
2. If the context doesn't contain information needed to answer the question, say "I don't have enough information to answer that."
3. Be concise and clear in your answers
4. If you reference specific information, mention where it comes from if relevant
5. Do not make up information or use knowledge outside the provided context`

// Pipeline wires the crawler, embedder, vector store, and generator into the
// ingestion and answering flows. All state lives in the collaborators;
// Pipeline itself is safe for concurrent use.
type Pipeline struct {
	crawler   sitekb.Crawler
	embedder  sitekb.Embedder
	store     sitekb.VectorStore
	generator sitekb.Generator
	logger    *slog.Logger
	overlap   int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for pipeline progress and degraded outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithOverlap sets the number of characters consecutive chunks share.
func WithOverlap(chars int) Option {
	return func(p *Pipeline) { p.overlap = chars }
}

// NewPipeline returns a Pipeline over the given collaborators. generator may
// be nil when answer generation is disabled; Answer then degrades to raw
// context concatenation.
func NewPipeline(crawler sitekb.Crawler, embedder sitekb.Embedder, store sitekb.VectorStore, generator sitekb.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		crawler:   crawler,
		embedder:  embedder,
		store:     store,
		generator: generator,
		logger:    slog.Default(),
		overlap:   sitekb.DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IngestOptions bounds one ingestion run.
type IngestOptions struct {
	BaseURL          string
	MaxPages         int
	MaxDepth         int
	MaxCharsPerChunk int
}

// IngestResult reports what one ingestion run produced.
type IngestResult struct {
	PagesCrawled      int      `json:"pagesCrawled"`
	ChunksCreated     int      `json:"chunksCreated"`
	EmbeddingsCreated int      `json:"embeddingsCreated"`
	CrawledURLs       []string `json:"crawledUrls"`
}

// Crawl runs the crawler without touching the knowledge base. It backs the
// crawl-test surface.
func (p *Pipeline) Crawl(ctx context.Context, baseURL string, maxPages, maxDepth int) (*sitekb.CrawlResult, error) {
	return p.crawler.Crawl(ctx, baseURL, maxPages, maxDepth)
}

// Ingest crawls the site, chunks every page, embeds all chunk texts in one
// batch, and indexes the result. It fails with an EEMPTY error when the
// crawl yields no pages or the pages yield no chunks.
func (p *Pipeline) Ingest(ctx context.Context, opts IngestOptions) (*IngestResult, error) {
	if opts.MaxCharsPerChunk <= 0 {
		opts.MaxCharsPerChunk = sitekb.DefaultMaxChunkChars
	}

	p.logger.Info("starting ingestion", "baseUrl", opts.BaseURL, "maxPages", opts.MaxPages, "maxDepth", opts.MaxDepth)

	crawled, err := p.crawler.Crawl(ctx, opts.BaseURL, opts.MaxPages, opts.MaxDepth)
	if err != nil {
		return nil, err
	}
	if len(crawled.Pages) == 0 {
		return nil, sitekb.Errorf(sitekb.EEMPTY, "no pages could be crawled from %s", opts.BaseURL)
	}

	var chunks []*sitekb.Chunk
	for _, page := range crawled.Pages {
		chunks = append(chunks, sitekb.ChunkPage(page.Text, page.URL, page.Title, opts.MaxCharsPerChunk, p.overlap)...)
	}
	if len(chunks) == 0 {
		return nil, sitekb.Errorf(sitekb.EEMPTY, "crawled pages produced no chunks")
	}

	ids := make([]string, len(chunks))
	texts := make([]string, len(chunks))
	metadata := make([]sitekb.ChunkMetadata, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ID
		texts[i] = chunk.Text
		metadata[i] = sitekb.ChunkMetadata{
			SourceURL: chunk.SourceURL,
			Title:     chunk.Title,
			ChunkID:   chunk.ID,
		}
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}

	if err := p.store.Upsert(ctx, ids, vectors, texts, metadata); err != nil {
		return nil, err
	}

	p.logger.Info("ingestion complete",
		"pages", len(crawled.Pages), "chunks", len(chunks), "embeddings", len(vectors))

	return &IngestResult{
		PagesCrawled:      len(crawled.Pages),
		ChunksCreated:     len(chunks),
		EmbeddingsCreated: len(vectors),
		CrawledURLs:       crawled.CrawledURLs,
	}, nil
}

// Retrieve embeds the query and returns the topK nearest chunks, ranked by
// ascending distance. Retrieval failures are logged and reported as an empty
// result rather than an error, so the answering flow can degrade gracefully.
func (p *Pipeline) Retrieve(ctx context.Context, query string, topK int) []sitekb.RetrievalResult {
	if query == "" {
		p.logger.Warn("empty retrieval query")
		return nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		p.logger.Error("query embedding failed", "error", err)
		return nil
	}

	matches, err := p.store.Query(ctx, vectors[0], topK)
	if err != nil {
		p.logger.Error("vector query failed", "error", err)
		return nil
	}

	results := make([]sitekb.RetrievalResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, sitekb.RetrievalResult{
			ID:         m.ID,
			Text:       m.Text,
			SourceURL:  m.Metadata.SourceURL,
			Title:      m.Metadata.Title,
			Distance:   m.Distance,
			Similarity: m.Similarity(),
		})
	}
	return results
}

// Answer runs the full retrieval and answering flow for question. It always
// returns a usable Answer: empty questions, empty retrievals, and generation
// failures are reported on the Answer itself rather than as errors.
func (p *Pipeline) Answer(ctx context.Context, question string, topK int, useLLM bool) *sitekb.Answer {
	if strings.TrimSpace(question) == "" {
		return &sitekb.Answer{
			Question:  question,
			Answer:    sitekb.MsgEmptyQuestion,
			Sources:   []string{},
			Retrieved: []sitekb.RetrievedChunk{},
			Err:       sitekb.FailureEmptyQuestion,
		}
	}

	retrieved := p.Retrieve(ctx, question, topK)
	if len(retrieved) == 0 {
		p.logger.Warn("no chunks retrieved", "question", question)
		return &sitekb.Answer{
			Question:  question,
			Answer:    sitekb.MsgNoResults,
			Sources:   []string{},
			Retrieved: []sitekb.RetrievedChunk{},
			Err:       sitekb.FailureNoResults,
		}
	}

	texts := make([]string, len(retrieved))
	for i, r := range retrieved {
		texts[i] = r.Text
	}
	sources := sourceURLs(retrieved)

	answer := &sitekb.Answer{
		Question:  question,
		Sources:   sources,
		Retrieved: formatRetrieved(retrieved),
		NumChunks: len(retrieved),
	}

	if !useLLM || p.generator == nil {
		answer.Answer = sitekb.JoinChunks(texts)
		return answer
	}

	generated, err := p.generator.Complete(ctx, answerSystemPrompt, userPrompt(question, texts))
	if err != nil {
		p.logger.Error("answer generation failed", "error", err)
		answer.Answer = sitekb.JoinChunks(texts)
		answer.Degraded = true
		return answer
	}

	answer.Answer = generated
	return answer
}

// Stats reports the knowledge base collection statistics.
func (p *Pipeline) Stats(ctx context.Context) (*sitekb.CollectionStats, error) {
	return p.store.Stats(ctx)
}

// userPrompt assembles the generation prompt from the retrieved context and
// the question.
func userPrompt(question string, texts []string) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	b.WriteString(sitekb.JoinChunks(texts))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nPlease answer the question based only on the context provided above.")
	return b.String()
}

// sourceURLs returns the unique source URLs of the results in rank order.
func sourceURLs(results []sitekb.RetrievalResult) []string {
	seen := make(map[string]bool)
	urls := []string{}
	for _, r := range results {
		if r.SourceURL == "" || seen[r.SourceURL] {
			continue
		}
		seen[r.SourceURL] = true
		urls = append(urls, r.SourceURL)
	}
	return urls
}

// formatRetrieved converts retrieval results into their ranked answer form.
func formatRetrieved(results []sitekb.RetrievalResult) []sitekb.RetrievedChunk {
	chunks := make([]sitekb.RetrievedChunk, len(results))
	for i, r := range results {
		chunks[i] = sitekb.RetrievedChunk{
			Rank:       i + 1,
			Similarity: r.Similarity,
			SourceURL:  r.SourceURL,
			Title:      r.Title,
			Text:       r.Text,
		}
	}
	return chunks
}
