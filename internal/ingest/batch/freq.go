package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lexibase/lexibase/internal/domain"
)

// FrequencyTable maps normalized words to a frequency score derived from
// their rank in a per-language word list.
type FrequencyTable map[string]float64

// LoadFrequencyTable reads a rank-ordered word list (<lang>_words.txt, one
// word per line, most frequent first). The score of the word at rank n
// (1-based) is 1/n. Blank lines and #-comments are skipped without
// consuming a rank.
func LoadFrequencyTable(path string) (FrequencyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frequency table: %w", err)
	}
	defer f.Close()

	table := FrequencyTable{}
	rank := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		rank++
		key := domain.NormalizeText(word)
		if _, ok := table[key]; ok {
			continue
		}
		table[key] = 1.0 / float64(rank)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frequency table %s: %w", path, err)
	}
	return table, nil
}

// Score returns the frequency score for a word, 0 when the word is not in
// the table.
func (t FrequencyTable) Score(word string) float64 {
	return t[domain.NormalizeText(word)]
}
