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

// Package search ranks the verses of a corpus by character n-gram overlap
// with a query text.
//
// The Searcher performs a full scan per query:
//   - the query is normalized and cut into n-grams and words
//   - the whole corpus is fetched once from a storage.CorpusProvider
//   - every verse is scored by the share of query n-grams it contains
//   - verses at or above the threshold are ranked by similarity, ties kept
//     in corpus order
//
// Similarity is relative to the query: a verse containing every query n-gram
// scores 100 regardless of its own length.
//
// FindSimilarVerses never fails; errors are logged and degrade to fewer or no
// results. Search returns the same results together with an error, so callers
// can tell a corpus outage from an empty result.
package search
