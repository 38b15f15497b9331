package oauth

const upperhex = "0123456789ABCDEF"

// Encode percent-encodes s with the RFC 3986 unreserved set. Letters, digits
// and "-._~" pass through; every other byte becomes %XX with uppercase hex.
// A space is encoded as %20, never "+".
func Encode(s string) string {
	escapes := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			escapes++
		}
	}
	if escapes == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*escapes)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&0x0f])
	}
	return string(buf)
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
