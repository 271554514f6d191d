package booking

import "regexp"

// Amounts travel as decimal strings end to end; nothing in this core does
// arithmetic on them.
var amountRe = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

func ValidAmount(s string) bool {
	return amountRe.MatchString(s)
}
