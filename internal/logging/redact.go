package logging

import (
	"fmt"
	"strings"
)

var secretKeys = map[string]bool{
	"api_token":               true,
	"authorization":           true,
	"codeforge_session_token": true,
	"session_token":           true,
	"token":                   true,
	"secret":                  true,
}

func RedactValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "bearer ") {
		return "Bearer " + mask(trimmed[7:])
	}
	return mask(trimmed)
}

func RedactArgs(args map[string]string) map[string]string {
	out := make(map[string]string, len(args))
	for key, value := range args {
		if isSecretKey(key) {
			out[key] = RedactValue(fmt.Sprint(value))
			continue
		}
		out[key] = value
	}
	return out
}

func isSecretKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	return secretKeys[lower]
}

func mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
