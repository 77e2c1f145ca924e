package service

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateStringParam 清洗查询参数：空串视为未提供，纯数字串视为非法。
func ValidateStringParam(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if isAllDigits(trimmed) {
		return "", fmt.Errorf("%w: %s must not be a pure number", ErrInvalidParam, name)
	}
	return trimmed, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
