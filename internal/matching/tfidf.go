package matching

import (
	"math"
	"sort"
	"strings"
)

// Vocabulary cap for the joint CV+listings corpus.
const maxVocabulary = 5000

// English stop words stripped before vectorization. Keyword matching over job
// text drowns without this.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "but": true, "by": true, "can": true,
	"could": true, "did": true, "do": true, "does": true, "doing": true,
	"down": true, "during": true, "each": true, "few": true, "for": true,
	"from": true, "further": true, "had": true, "has": true, "have": true,
	"having": true, "he": true, "her": true, "here": true, "hers": true,
	"him": true, "his": true, "how": true, "i": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"just": true, "me": true, "more": true, "most": true, "my": true,
	"no": true, "nor": true, "not": true, "now": true, "of": true,
	"off": true, "on": true, "once": true, "only": true, "or": true,
	"other": true, "our": true, "ours": true, "out": true, "over": true,
	"own": true, "same": true, "she": true, "should": true, "so": true,
	"some": true, "such": true, "than": true, "that": true, "the": true,
	"their": true, "theirs": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"to": true, "too": true, "under": true, "until": true, "up": true,
	"very": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "who": true,
	"whom": true, "why": true, "will": true, "with": true, "you": true,
	"your": true, "yours": true,
}

// tokenize splits already-normalized text into terms, dropping stop words and
// single characters. Trailing dots are stripped so sentence-final words match
// their plain form, but "node.js" style terms survive.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, ".")
		if len(f) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// textSimilarities computes the cosine similarity between a TF-IDF vector of
// the CV text and each job text, vectorized jointly over one shared corpus.
// A degenerate corpus (empty CV, empty vocabulary) yields all-zero
// similarities rather than an error.
func textSimilarities(cvText string, jobTexts []string) []float64 {
	sims := make([]float64, len(jobTexts))
	if strings.TrimSpace(cvText) == "" || len(jobTexts) == 0 {
		return sims
	}

	docs := make([][]string, 0, len(jobTexts)+1)
	docs = append(docs, tokenize(cvText))
	for _, t := range jobTexts {
		docs = append(docs, tokenize(t))
	}

	vocab := buildVocabulary(docs, maxVocabulary)
	if len(vocab) == 0 {
		return sims
	}

	idf := inverseDocFrequencies(docs, vocab)
	cvVec := tfidfVector(docs[0], vocab, idf)
	if len(cvVec) == 0 {
		return sims
	}

	for i := range jobTexts {
		sims[i] = dot(cvVec, tfidfVector(docs[i+1], vocab, idf))
	}
	return sims
}

// buildVocabulary assigns an index to the most frequent terms across the
// corpus, up to the cap. Ties break alphabetically so vectorization is
// deterministic.
func buildVocabulary(docs [][]string, limit int) map[string]int {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, t := range doc {
			counts[t]++
		}
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}

	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

// inverseDocFrequencies uses the smoothed formulation ln((1+n)/(1+df)) + 1 so
// terms present in every document still contribute.
func inverseDocFrequencies(docs [][]string, vocab map[string]int) []float64 {
	df := make([]int, len(vocab))
	for _, doc := range docs {
		seen := make(map[int]bool, len(doc))
		for _, t := range doc {
			if idx, ok := vocab[t]; ok && !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(df))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return idf
}

// tfidfVector builds an L2-normalized sparse vector for one document.
func tfidfVector(doc []string, vocab map[string]int, idf []float64) map[int]float64 {
	vec := make(map[int]float64)
	for _, t := range doc {
		if idx, ok := vocab[t]; ok {
			vec[idx]++
		}
	}
	if len(vec) == 0 {
		return vec
	}

	var norm float64
	for idx := range vec {
		vec[idx] *= idf[idx]
		norm += vec[idx] * vec[idx]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return map[int]float64{}
	}
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// dot of two L2-normalized sparse vectors is their cosine similarity.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, v := range a {
		sum += v * b[idx]
	}
	return sum
}
