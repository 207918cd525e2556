package util

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsSymbolPunct reports whether b is one of the non-alphanumeric characters
// allowed in vm label names and hack symbols.
func IsSymbolPunct(b byte) bool {
	return b == '_' || b == '.' || b == ':'
}

func IsSymbolStart(b byte) bool {
	return IsLetter(b) || IsSymbolPunct(b)
}

func IsSymbolChar(b byte) bool {
	return IsSymbolStart(b) || IsNumber(b)
}

// IsSymbol reports whether s is a valid label or function name:
// a letter, '_', '.' or ':' followed by any of those or digits.
func IsSymbol(s string) bool {
	if len(s) == 0 || !IsSymbolStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsSymbolChar(s[i]) {
			return false
		}
	}
	return true
}

func IsWhiteSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
