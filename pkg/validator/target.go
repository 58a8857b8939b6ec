package validator

import (
	"net"
	"net/url"
	"strings"
)

// ValidateTarget accepts host:port pairs, http(s) URLs and bare host names.
func ValidateTarget(target string) bool {
	if target == "" {
		return false
	}

	if _, _, err := net.SplitHostPort(target); err == nil {
		return true
	}

	if u, err := url.Parse(target); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return true
	}

	// bare names like example.com
	if !strings.Contains(target, "://") {
		return true
	}

	return false
}

func ValidateMethod(method string) bool {
	validMethods := map[string]bool{
		"GET":       true,
		"POST":      true,
		"HEAD":      true,
		"PUT":       true,
		"DELETE":    true,
		"TCP_PING":  true,
		"DNS_QUERY": true,
	}
	return validMethods[method]
}
