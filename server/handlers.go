package server

import (
	"fmt"
	"net/http"

	"github.com/sitekb/sitekb"
	"github.com/sitekb/sitekb/pipeline"
)

// Request defaults matching the documented API surface.
const (
	DefaultMaxPages  = 50
	DefaultMaxDepth  = 3
	DefaultTopK      = 5
	previewMaxLength = 200
)

type crawlRequest struct {
	BaseURL          string `json:"baseUrl"`
	MaxPages         int    `json:"maxPages"`
	MaxDepth         int    `json:"maxDepth"`
	MaxCharsPerChunk int    `json:"maxCharsPerChunk"`
}

// normalize fills unset crawl bounds with their defaults.
func (req *crawlRequest) normalize() {
	if req.MaxPages <= 0 {
		req.MaxPages = DefaultMaxPages
	}
	if req.MaxDepth <= 0 {
		req.MaxDepth = DefaultMaxDepth
	}
	if req.MaxCharsPerChunk <= 0 {
		req.MaxCharsPerChunk = sitekb.DefaultMaxChunkChars
	}
}

type crawlTestResponse struct {
	TotalPagesCrawled int      `json:"totalPagesCrawled"`
	CrawledURLs       []string `json:"crawledUrls"`
}

// handleCrawlTest runs the crawler alone, without touching the index.
func (s *Server) handleCrawlTest(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.normalize()

	result, err := s.kb.Crawl(r.Context(), req.BaseURL, req.MaxPages, req.MaxDepth)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(result.CrawledURLs) == 0 {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Detail: "No pages crawled. Check the URL or try again."})
		return
	}

	s.respondJSON(w, http.StatusOK, crawlTestResponse{
		TotalPagesCrawled: len(result.CrawledURLs),
		CrawledURLs:       result.CrawledURLs,
	})
}

type ingestResponse struct {
	PagesCrawled  int      `json:"pagesCrawled"`
	ChunksCreated int      `json:"chunksCreated"`
	CrawledURLs   []string `json:"crawledUrls"`
}

// handleIngest runs the full ingestion pipeline and reports crawl and chunk
// counts.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.normalize()

	result, err := s.kb.Ingest(r.Context(), pipeline.IngestOptions{
		BaseURL:          req.BaseURL,
		MaxPages:         req.MaxPages,
		MaxDepth:         req.MaxDepth,
		MaxCharsPerChunk: req.MaxCharsPerChunk,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, ingestResponse{
		PagesCrawled:  result.PagesCrawled,
		ChunksCreated: result.ChunksCreated,
		CrawledURLs:   result.CrawledURLs,
	})
}

type crawlResponse struct {
	Success           bool     `json:"success"`
	Message           string   `json:"message"`
	PagesCrawled      int      `json:"pagesCrawled"`
	ChunksCreated     int      `json:"chunksCreated"`
	EmbeddingsCreated int      `json:"embeddingsCreated"`
	CrawledURLs       []string `json:"crawledUrls"`
}

// handleCrawl runs the full ingestion pipeline and reports every stage's
// counts, including embeddings.
func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.normalize()

	result, err := s.kb.Ingest(r.Context(), pipeline.IngestOptions{
		BaseURL:          req.BaseURL,
		MaxPages:         req.MaxPages,
		MaxDepth:         req.MaxDepth,
		MaxCharsPerChunk: req.MaxCharsPerChunk,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, crawlResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully crawled and indexed %d pages with %d chunks",
			result.PagesCrawled, result.ChunksCreated),
		PagesCrawled:      result.PagesCrawled,
		ChunksCreated:     result.ChunksCreated,
		EmbeddingsCreated: result.EmbeddingsCreated,
		CrawledURLs:       result.CrawledURLs,
	})
}

type queryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK"`
	UseLLM   *bool  `json:"useLlm"`
}

// handleQuery runs the answering flow with an optional raw-context mode.
// Degraded outcomes are still 200s; the Answer carries its own status.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.TopK <= 0 {
		req.TopK = DefaultTopK
	}
	useLLM := req.UseLLM == nil || *req.UseLLM

	answer := s.kb.Answer(r.Context(), req.Question, req.TopK, useLLM)
	s.respondJSON(w, http.StatusOK, answer)
}

type askRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK"`
}

type askResponse struct {
	Question      string   `json:"question"`
	Answer        string   `json:"answer"`
	Sources       []string `json:"sources"`
	NumSources    int      `json:"numSources"`
	NumChunksUsed int      `json:"numChunksUsed"`
}

// handleAsk runs the answering flow with generation always enabled. Unlike
// /query it rejects questions that could not be answered.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.TopK <= 0 {
		req.TopK = DefaultTopK
	}

	answer := s.kb.Answer(r.Context(), req.Question, req.TopK, true)
	if answer.Err != "" {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Detail: answer.Err})
		return
	}

	s.respondJSON(w, http.StatusOK, askResponse{
		Question:      answer.Question,
		Answer:        answer.Answer,
		Sources:       answer.Sources,
		NumSources:    len(answer.Sources),
		NumChunksUsed: answer.NumChunks,
	})
}

type retrievalTestRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK"`
}

type retrievalTestResult struct {
	Rank        int      `json:"rank"`
	ID          string   `json:"id"`
	Distance    *float64 `json:"distance"`
	SourceURL   string   `json:"sourceUrl"`
	Title       string   `json:"title"`
	TextPreview string   `json:"textPreview"`
}

type retrievalTestResponse struct {
	Query        string                `json:"query"`
	TotalResults int                   `json:"totalResults"`
	Results      []retrievalTestResult `json:"results"`
}

// handleRetrievalTest runs similarity search alone, returning ranked matches
// with truncated text previews.
func (s *Server) handleRetrievalTest(w http.ResponseWriter, r *http.Request) {
	var req retrievalTestRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.TopK <= 0 {
		req.TopK = DefaultTopK
	}

	retrieved := s.kb.Retrieve(r.Context(), req.Query, req.TopK)

	results := make([]retrievalTestResult, len(retrieved))
	for i, res := range retrieved {
		results[i] = retrievalTestResult{
			Rank:        i + 1,
			ID:          res.ID,
			Distance:    res.Distance,
			SourceURL:   res.SourceURL,
			Title:       res.Title,
			TextPreview: preview(res.Text),
		}
	}

	s.respondJSON(w, http.StatusOK, retrievalTestResponse{
		Query:        req.Query,
		TotalResults: len(results),
		Results:      results,
	})
}

// handleStats reports collection statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.kb.Stats(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

// preview truncates text for retrieval test responses.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewMaxLength {
		return text
	}
	return string(runes[:previewMaxLength]) + "..."
}
