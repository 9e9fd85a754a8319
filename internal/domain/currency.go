package domain

import "strconv"

// FormatPrice renders an amount in kwanzas with thousands separators,
// e.g. 12500 -> "12.500 Kz".
func FormatPrice(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var grouped []byte
	for i, c := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, c)
	}

	out := string(grouped) + " Kz"
	if negative {
		out = "-" + out
	}
	return out
}
