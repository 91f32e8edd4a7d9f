// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ngram provides the text primitives behind verse similarity search.
//
// Text is first reduced to its comparable characters by a Normalizer. The
// comparable character class is a Classifier, so the same code handles Arabic
// (the default), Latin, or any set of Unicode scripts.
//
// Normalized text is cut into overlapping character windows (n-grams) by
// Generate and into words by SplitWords. Windows are measured in runes, never
// bytes, so multi-byte scripts are handled correctly.
//
// Two sequences are compared with IntersectionCount, a multiset intersection
// that is used for both n-grams and words. Similarity turns an intersection
// into a percentage of the target's gram count:
//
//	similarity = intersection / len(targetGrams) * 100
//
// Note that this is a coverage ratio relative to the target, not a symmetric
// Jaccard or Dice coefficient: Similarity(a, b) and Similarity(b, a) differ
// whenever a and b have a different number of grams.
package ngram
