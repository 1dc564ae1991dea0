package service

import (
	"regexp"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

// Weights for the three evidence tiers.
const (
	keywordWeight = 1
	patternWeight = 2
	uniqueWeight  = 3
)

// LanguageService scores paste content against the language catalog.
// Detection is pure and deterministic: no I/O, no state, same input
// always yields the same label. The result is advisory only, it
// pre-fills the form field and never gates submission.
type LanguageService struct{}

// NewLanguageService constructs a LanguageService.
func NewLanguageService() *LanguageService {
	return &LanguageService{}
}

// Detect returns the best-guess language for the given text. Languages
// are scored in catalog order; the strictly highest aggregate wins and
// equal non-zero scores resolve to the earliest catalog entry. A top
// score of zero falls back to plain text.
func (s *LanguageService) Detect(text string) models.Language {
	best := models.LangText
	bestScore := 0

	for _, lang := range models.SupportedLanguages {
		score := scoreLanguage(text, languagePatterns[lang])
		if score > bestScore {
			best = lang
			bestScore = score
		}
	}

	if bestScore == 0 {
		return models.LangText
	}
	return best
}

// Scores returns the per-language evidence tally, in catalog order.
// Served as the detection endpoint's debug payload.
func (s *LanguageService) Scores(text string) []models.LanguageScore {
	scores := make([]models.LanguageScore, 0, len(models.SupportedLanguages))
	for _, lang := range models.SupportedLanguages {
		scores = append(scores, models.LanguageScore{
			Language: lang,
			Score:    scoreLanguage(text, languagePatterns[lang]),
		})
	}
	return scores
}

// Catalog returns the supported language options.
func (s *LanguageService) Catalog() []models.LanguageOption {
	return models.LanguageOptions()
}

func scoreLanguage(text string, p languagePattern) int {
	score := 0
	score += countOccurrences(text, p.keywords) * keywordWeight
	score += countOccurrences(text, p.patterns) * patternWeight
	score += countOccurrences(text, p.unique) * uniqueWeight
	return score
}

func countOccurrences(text string, exprs []*regexp.Regexp) int {
	total := 0
	for _, expr := range exprs {
		total += len(expr.FindAllStringIndex(text, -1))
	}
	return total
}
