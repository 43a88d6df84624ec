package llm

// ExtractJSON returns the first top-level JSON value (object or array) in s,
// skipping markdown fences and any prose around it. Returns "" when no
// balanced JSON value is present. Models wrap JSON in ```json fences or
// explanatory sentences often enough that callers should not unmarshal raw
// response text directly.
func ExtractJSON(s string) string {
	start := -1
	var opening, closing byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			opening = s[i]
			if opening == '{' {
				closing = '}'
			} else {
				closing = ']'
			}
			break
		}
	}
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// String contents never affect nesting.
		case ch == opening:
			depth++
		case ch == closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
