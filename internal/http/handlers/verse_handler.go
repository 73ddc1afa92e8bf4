// Verse and surah HTTP handlers.
//
// This file exposes REST endpoints for corpus lookups:
//   - GET /verses/{surah}/{ayah}   (single verse)
//   - GET /surahs/{surah}          (surah metadata)
//   - GET /surahs/{surah}/verses   (all verses in a surah)
//   - GET /stats                   (corpus totals)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
	"github.com/sayedmahmoud266/quran-lookup/internal/search"
	"github.com/sayedmahmoud266/quran-lookup/internal/services"
)

//
// Service contract (context-aware)
//

// QuranService defines the corpus lookup and search operations consumed by
// HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type QuranService interface {
	// GetVerse returns the verse at (surah, ayah); ayah 0 is the Basmala slot.
	GetVerse(ctx context.Context, surah, ayah int) (*corpus.Verse, error)
	// GetSurah returns metadata for one surah.
	GetSurah(ctx context.Context, surah int) (*corpus.Chapter, error)
	// GetSurahVerses returns every verse of a surah in ayah order.
	GetSurahVerses(ctx context.Context, surah int) ([]*corpus.Verse, error)
	// SearchExact returns verses containing the query as a literal substring.
	SearchExact(ctx context.Context, query string, normalized bool) ([]*corpus.Verse, error)
	// SearchFuzzy returns per-verse fuzzy matches at or above threshold.
	SearchFuzzy(ctx context.Context, query string, threshold float64, normalized bool, limit int) ([]search.FuzzyMatch, error)
	// SearchSlidingWindow returns matches that may span verse boundaries.
	SearchSlidingWindow(ctx context.Context, query string, threshold float64, normalized bool, limit int) ([]search.MultiAyahMatch, error)
	// SmartSearch cascades exact, fuzzy, and sliding-window strategies.
	SmartSearch(ctx context.Context, query string, fuzzyThreshold, slidingThreshold float64, normalized bool, limit int) (search.SmartResult, error)
	// GetStats reports corpus totals.
	GetStats(ctx context.Context) services.Stats
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for verse lookups and text search.
// It depends on an abstract service interface to keep transport concerns
// separate from business logic.
type Handlers struct {
	svc QuranService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(svc QuranService) *Handlers {
	return &Handlers{svc: svc}
}

//
// DTOs
//

// SurahInfoResponse describes one surah.
type SurahInfoResponse struct {
	SurahNumber int  `json:"surah_number" example:"1"`
	VerseCount  int  `json:"verse_count" example:"7"`
	HasBasmala  bool `json:"has_basmala" example:"true"`
}

// pathInt parses a numeric path parameter. ok is false when the value is
// missing or not an integer; the caller is expected to fail with 400.
func pathInt(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, false
	}
	return n, true
}

// notFound reports whether err maps to a 404 response.
func notFound(err error) bool {
	return errors.Is(err, corpus.ErrSurahNotFound) || errors.Is(err, corpus.ErrVerseNotFound)
}

// GetVerse handles GET /verses/:surah/:ayah.
//
// @Summary      Get a single verse
// @Description  Returns the verse at the given surah and ayah number. Ayah 0 is the Basmala when present.
// @Tags         verses
// @Produce      json
// @Param        surah  path  int  true  "Surah number (1-114)"
// @Param        ayah   path  int  true  "Ayah number (0 for Basmala)"
// @Success      200  {object}  corpus.Verse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /verses/{surah}/{ayah} [get]
func (h *Handlers) GetVerse(c *gin.Context) {
	surah, okS := pathInt(c, "surah")
	ayah, okA := pathInt(c, "ayah")
	if !okS || !okA {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "surah and ayah must be integers")
		return
	}

	v, err := h.svc.GetVerse(c.Request.Context(), surah, ayah)
	if err != nil {
		if notFound(err) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load verse")
		return
	}
	ok(c, http.StatusOK, v)
}

// GetSurahInfo handles GET /surahs/:surah.
//
// @Summary      Get surah metadata
// @Description  Returns the verse count and Basmala flag for one surah.
// @Tags         surahs
// @Produce      json
// @Param        surah  path  int  true  "Surah number (1-114)"
// @Success      200  {object}  SurahInfoResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /surahs/{surah} [get]
func (h *Handlers) GetSurahInfo(c *gin.Context) {
	surah, okS := pathInt(c, "surah")
	if !okS {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "surah must be an integer")
		return
	}

	ch, err := h.svc.GetSurah(c.Request.Context(), surah)
	if err != nil {
		if notFound(err) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load surah")
		return
	}
	ok(c, http.StatusOK, SurahInfoResponse{
		SurahNumber: ch.Number,
		VerseCount:  ch.VerseCount(),
		HasBasmala:  ch.HasBasmala(),
	})
}

// GetSurahVerses handles GET /surahs/:surah/verses.
//
// @Summary      List all verses in a surah
// @Description  Returns every verse of the surah in ayah order, including the Basmala if present.
// @Tags         surahs
// @Produce      json
// @Param        surah  path  int  true  "Surah number (1-114)"
// @Success      200  {array}   corpus.Verse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /surahs/{surah}/verses [get]
func (h *Handlers) GetSurahVerses(c *gin.Context) {
	surah, okS := pathInt(c, "surah")
	if !okS {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "surah must be an integer")
		return
	}

	verses, err := h.svc.GetSurahVerses(c.Request.Context(), surah)
	if err != nil {
		if notFound(err) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load surah verses")
		return
	}
	ok(c, http.StatusOK, verses)
}

// GetStats handles GET /stats.
//
// @Summary      Corpus statistics
// @Description  Returns total surah and verse counts plus the text source.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  services.Stats
// @Router       /stats [get]
func (h *Handlers) GetStats(c *gin.Context) {
	ok(c, http.StatusOK, h.svc.GetStats(c.Request.Context()))
}
