package templatearg

import "strings"

// TokenizeParameter 把一个叶子参数文本切成原子记号，仅用于诊断与美化输出，
// 不参与关系推导：限定标识符整体保留；'(' ')' '[' ']' ',' '*' 各为单字符记号；
// 连续三个 '.' 折叠为一个省略号记号；裸修饰关键字被丢弃。
func TokenizeParameter(t string) []string {
	var result []string

	for _, word := range strings.Fields(t) {
		if isQualifiedIdentifier(word) {
			if !isStrippedKeyword(word) {
				result = append(result, word)
			}
			continue
		}

		var tok strings.Builder
		push := func() {
			if tok.Len() > 0 {
				result = append(result, tok.String())
				tok.Reset()
			}
		}

		for i := 0; i < len(word); i++ {
			switch c := word[i]; c {
			case '(', ')', '[', ']':
				push()
				result = append(result, string(c))
			case ',':
				push()
				result = append(result, ",")
			case '*':
				push()
				result = append(result, "*")
			case ':':
				if tok.Len() > 0 && tok.String() != ":" {
					push()
					tok.WriteByte(':')
				} else {
					tok.WriteByte(':')
				}
			case '.':
				switch tok.String() {
				case "..":
					result = append(result, "...")
					tok.Reset()
				case ".":
					tok.Reset()
					tok.WriteString("..")
				default:
					push()
					tok.WriteByte('.')
				}
			default:
				tok.WriteByte(c)
			}
		}

		trimmed := strings.TrimSpace(tok.String())
		if trimmed != "" && !isStrippedKeyword(trimmed) {
			result = append(result, trimmed)
		}
	}

	return result
}

func isStrippedKeyword(t string) bool {
	return t == "class" || t == "typename" || t == "struct"
}

func isIdentifierChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isQualifiedIdentifier(t string) bool {
	if t == "" {
		return false
	}
	c := t[0]
	if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return false
	}
	for i := 0; i < len(t); i++ {
		if !isIdentifierChar(t[i]) && t[i] != ':' {
			return false
		}
	}
	return true
}
