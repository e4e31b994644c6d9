package ingredient

import "strings"

// Tokens 將正規化名稱切成單字
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// ContainsPhrase 判斷 haystack 是否以完整單字序列的方式包含 needle
// 例如 "whole wheat flour" 包含 "wheat flour"，但 "eggplant" 不包含 "egg"
func ContainsPhrase(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// ContainsEither 雙向子字串檢查：任一方包含另一方，空字串不算
func ContainsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// SharesToken 判斷兩組單字是否至少有一個相同
func SharesToken(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
