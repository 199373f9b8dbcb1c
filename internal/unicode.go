package internal

// toSubscript renders n with Unicode subscript digits (U+2080..U+2089).
func toSubscript(n int) string {
	if n == 0 {
		return "₀"
	}
	neg := n < 0
	if neg {
		n = -n
	}

	rs := make([]rune, 0, 20)
	for ; n != 0; n /= 10 {
		rs = append(rs, '₀'+rune(n%10))
	}
	if neg {
		rs = append(rs, '₋')
	}
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}

	return string(rs)
}
