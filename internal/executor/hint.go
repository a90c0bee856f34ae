package executor

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// Hint returns an actionable description of a failed request, or "" when
// the failure has no better explanation than its own message.
func Hint(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return statusHint(reqErr.Status)
	}

	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timeout - check the backend URL or raise request_timeout in the config"
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return "Connection refused - check that the backend is running and the port is correct"
	case errors.Is(err, syscall.ECONNRESET):
		return "Connection reset by server - the backend may have crashed"
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return "Network unreachable - check the network connection"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "DNS resolution failed - verify the backend hostname"
	}

	var unknownAuth x509.UnknownAuthorityError
	if errors.As(err, &unknownAuth) {
		return "TLS certificate signed by unknown authority"
	}
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &invalidCert) {
		return "TLS certificate is invalid"
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return "TLS hostname mismatch - certificate doesn't match the backend host"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Connection timeout - the backend took too long to respond"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unsupported protocol"):
		return "Invalid URL - the backend URL needs an http:// or https:// scheme"
	case strings.Contains(msg, "eof"):
		return "Connection closed unexpectedly"
	}
	return ""
}

func statusHint(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "Not found - the post may have been deleted"
	case status == http.StatusBadRequest:
		return "Bad request - the backend rejected the input"
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return "Access denied by the backend"
	case status >= 500:
		return "Server error - check the backend logs"
	}
	return ""
}
