package dupes

import (
	"path/filepath"
	"sort"
	"strings"
)

const otherRank = 100

var qualityRanks = map[string]int{
	"flac": 1,
	"m4a":  2,
	"mp3":  3,
}

var qualityLabels = map[int]string{
	1: "FLAC",
	2: "M4A",
	3: "MP3",
}

// QualityRank orders container formats; lower is better.
func QualityRank(path string) int {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if rank, ok := qualityRanks[ext]; ok {
		return rank
	}
	return otherRank
}

// QualityLabel names the format a rank stands for.
func QualityLabel(rank int) string {
	if label, ok := qualityLabels[rank]; ok {
		return label
	}
	return "OTHER"
}

// RankedFile is one group member with its quality rank.
type RankedFile struct {
	Path  string
	Rank  int
	Label string
}

// RankByQuality sorts paths best-first; equal ranks keep their input order.
// The second return reports whether the best copy strictly outranks the
// runner-up.
func RankByQuality(paths []string) ([]RankedFile, bool) {
	ranked := make([]RankedFile, 0, len(paths))
	for _, path := range paths {
		rank := QualityRank(path)
		ranked = append(ranked, RankedFile{Path: path, Rank: rank, Label: QualityLabel(rank)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})
	return ranked, len(ranked) >= 2 && ranked[0].Rank < ranked[1].Rank
}
