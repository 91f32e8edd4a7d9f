package ngram

// Similarity returns the percentage of target grams found in candidate.
// The denominator is always len(target); an empty target scores 0.
func Similarity(target, candidate []string) float64 {
	return Score(len(target), IntersectionCount(target, candidate))
}

// Score converts an intersection count into a target-relative percentage.
func Score(targetCount, intersection int) float64 {
	if targetCount == 0 {
		return 0.0
	}
	return float64(intersection) / float64(targetCount) * 100.0
}

// CalculateSimilarity normalizes both texts, cuts them into grams of the given
// size and scores text2 against text1.
func (n *Normalizer) CalculateSimilarity(text1, text2 string, size int) float64 {
	return Similarity(n.Grams(text1, size), n.Grams(text2, size))
}

// CalculateSimilarity scores two texts with the Default normalizer.
func CalculateSimilarity(text1, text2 string, size int) float64 {
	return Default.CalculateSimilarity(text1, text2, size)
}
