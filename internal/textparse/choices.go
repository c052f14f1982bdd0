package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

var chooseCountPattern = regexp.MustCompile(`(?i)\bchoose\s+(?:any\s+)?(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\b`)

var numberWords = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
	"ten":   10,
}

// ChooseCount extracts N from "choose N ..." phrasing. When the pattern is
// absent it returns 0 and false, meaning "not a choice grant" rather than a
// guessed count.
func ChooseCount(text string) (int, bool) {
	m := chooseCountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	token := strings.ToLower(m[1])
	if n, ok := numberWords[token]; ok {
		return n, true
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}
