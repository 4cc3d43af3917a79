// Package similarity scores how alike two strings are.
package similarity

import "strings"

// Compare returns the Sørensen–Dice coefficient of the character bigrams of
// a and b, ignoring whitespace. The result is in [0,1], symmetric, 1 for
// identical strings and 0 when either side is empty or too short to form a
// bigram.
func Compare(a, b string) float64 {
	a = stripSpace(a)
	b = stripSpace(b)

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	first := make(map[[2]rune]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		first[[2]rune{ra[i], ra[i+1]}]++
	}

	intersection := 0
	for i := 0; i < len(rb)-1; i++ {
		bg := [2]rune{rb[i], rb[i+1]}
		if n := first[bg]; n > 0 {
			first[bg] = n - 1
			intersection++
		}
	}

	return 2.0 * float64(intersection) / float64(len(ra)+len(rb)-2)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
