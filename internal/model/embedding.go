package model

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the width of the recipes.embedding column.
const EmbeddingDimensions = 64

// SearchTerms splits text into lower-cased words of two or more characters.
// Plurals are reduced so "tomatoes" and "tomato" share a term.
func SearchTerms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := fields[:0]
	for _, f := range fields {
		f = singular(f)
		if len(f) < 2 {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

func singular(word string) string {
	if len(word) <= 3 || !strings.HasSuffix(word, "s") || strings.HasSuffix(word, "ss") {
		return word
	}
	if stem := strings.TrimSuffix(word, "es"); stem != word {
		for _, end := range []string{"o", "x", "ch", "sh", "ss"} {
			if strings.HasSuffix(stem, end) {
				return stem
			}
		}
	}
	return strings.TrimSuffix(word, "s")
}

// GenerateEmbedding hashes the search terms of text into a unit length
// bag-of-words vector. Texts sharing more terms end up closer under cosine
// distance. Text without terms yields the zero vector.
func GenerateEmbedding(text string) pgvector.Vector {
	vec := make([]float32, EmbeddingDimensions)
	for _, term := range SearchTerms(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(term))
		vec[h.Sum32()%EmbeddingDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return pgvector.NewVector(vec)
}
