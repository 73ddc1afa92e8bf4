// Search HTTP handlers.
//
// This file exposes the four search endpoints:
//   - GET /search          (exact substring matching)
//   - GET /fuzzy-search    (per-verse fuzzy matching, scores in [0,1])
//   - GET /sliding-search  (multi-ayah sliding window, scores in [0,100])
//   - GET /smart-search    (cascading exact -> fuzzy -> sliding window)
//
// All endpoints share the query/threshold/normalized/limit parameter
// conventions; validation happens in the service layer and is translated
// to 400 responses here.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sayedmahmoud266/quran-lookup/internal/search"
	"github.com/sayedmahmoud266/quran-lookup/internal/services"
	"github.com/sayedmahmoud266/quran-lookup/internal/utils"
)

// searchParams carries the query parameters shared by the search endpoints.
type searchParams struct {
	query      string
	normalized bool
	limit      int
}

func readSearchParams(c *gin.Context) searchParams {
	return searchParams{
		query:      c.Query("query"),
		normalized: utils.BoolDefault(c.Query("normalized"), true),
		limit:      utils.AtoiDefault(c.Query("limit"), 0),
	}
}

// failSearch maps service-layer validation errors onto the error envelope.
// It returns false when err was nil and nothing was written.
func failSearch(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, services.ErrEmptyQuery),
		errors.Is(err, services.ErrQueryTooLong):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidFuzzyThreshold),
		errors.Is(err, services.ErrInvalidSlidingThreshold),
		errors.Is(err, services.ErrInvalidLimit):
		fail(c, http.StatusBadRequest, ErrCodeInvalidArgument, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "search failed")
	}
	return true
}

// Search handles GET /search.
//
// @Summary      Exact substring search
// @Description  Returns verses containing the query text as a literal substring, in canonical order.
// @Tags         search
// @Produce      json
// @Param        query       query  string  true   "Arabic text to search for"
// @Param        normalized  query  bool    false  "Search normalized text (default true)"
// @Param        limit       query  int     false  "Maximum number of results"
// @Success      200  {array}   corpus.Verse
// @Failure      400  {object}  ErrorResponse
// @Router       /search [get]
func (h *Handlers) Search(c *gin.Context) {
	p := readSearchParams(c)

	verses, err := h.svc.SearchExact(c.Request.Context(), p.query, p.normalized)
	if failSearch(c, err) {
		return
	}
	if p.limit > 0 && len(verses) > p.limit {
		verses = verses[:p.limit]
	}
	ok(c, http.StatusOK, verses)
}

// FuzzySearch handles GET /fuzzy-search.
//
// @Summary      Fuzzy search within single verses
// @Description  Scores word windows of each verse against the query and returns matches at or above the threshold, sorted by similarity.
// @Tags         search
// @Produce      json
// @Param        query       query  string  true   "Arabic text to search for"
// @Param        threshold   query  number  false  "Minimum similarity in [0,1] (default 0.7)"
// @Param        normalized  query  bool    false  "Search normalized text (default true)"
// @Param        limit       query  int     false  "Maximum number of results"
// @Success      200  {array}   search.FuzzyMatch
// @Failure      400  {object}  ErrorResponse
// @Router       /fuzzy-search [get]
func (h *Handlers) FuzzySearch(c *gin.Context) {
	p := readSearchParams(c)
	threshold := utils.FloatDefault(c.Query("threshold"), search.DefaultFuzzyThreshold)

	matches, err := h.svc.SearchFuzzy(c.Request.Context(), p.query, threshold, p.normalized, p.limit)
	if failSearch(c, err) {
		return
	}
	ok(c, http.StatusOK, matches)
}

// SlidingSearch handles GET /sliding-search.
//
// @Summary      Sliding-window search across verse boundaries
// @Description  Scans a flattened word stream of the whole corpus and returns matches that may span multiple verses, sorted by similarity.
// @Tags         search
// @Produce      json
// @Param        query       query  string  true   "Arabic text to search for"
// @Param        threshold   query  number  false  "Minimum similarity in [0,100] (default 80)"
// @Param        normalized  query  bool    false  "Search normalized text (default true)"
// @Param        limit       query  int     false  "Maximum number of results"
// @Success      200  {array}   search.MultiAyahMatch
// @Failure      400  {object}  ErrorResponse
// @Router       /sliding-search [get]
func (h *Handlers) SlidingSearch(c *gin.Context) {
	p := readSearchParams(c)
	threshold := utils.FloatDefault(c.Query("threshold"), search.DefaultSlidingThreshold)

	matches, err := h.svc.SearchSlidingWindow(c.Request.Context(), p.query, threshold, p.normalized, p.limit)
	if failSearch(c, err) {
		return
	}
	ok(c, http.StatusOK, matches)
}

// SmartSearch handles GET /smart-search.
//
// @Summary      Cascading search
// @Description  Tries exact, then fuzzy, then sliding-window search and returns the first strategy that yields results, together with the method name.
// @Tags         search
// @Produce      json
// @Param        query              query  string  true   "Arabic text to search for"
// @Param        threshold          query  number  false  "Fuzzy similarity floor in [0,1] (default 0.7)"
// @Param        sliding_threshold  query  number  false  "Sliding-window similarity floor in [0,100] (default 80)"
// @Param        normalized         query  bool    false  "Search normalized text (default true)"
// @Param        limit              query  int     false  "Maximum number of results"
// @Success      200  {object}  search.SmartResult
// @Failure      400  {object}  ErrorResponse
// @Router       /smart-search [get]
func (h *Handlers) SmartSearch(c *gin.Context) {
	p := readSearchParams(c)
	fuzzyThreshold := utils.FloatDefault(c.Query("threshold"), search.DefaultFuzzyThreshold)
	slidingThreshold := utils.FloatDefault(c.Query("sliding_threshold"), search.DefaultSlidingThreshold)

	out, err := h.svc.SmartSearch(c.Request.Context(), p.query, fuzzyThreshold, slidingThreshold, p.normalized, p.limit)
	if failSearch(c, err) {
		return
	}
	ok(c, http.StatusOK, out)
}
