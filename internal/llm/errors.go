package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies provider failures once, inside the adapter, so call
// sites never re-match error strings.
type ErrorKind string

const (
	KindAuth        ErrorKind = "AUTH"         // bad or revoked credentials
	KindQuota       ErrorKind = "QUOTA"        // credits exhausted / rate capped
	KindTransport   ErrorKind = "TRANSPORT"    // network or non-2xx status
	KindBadResponse ErrorKind = "BAD_RESPONSE" // 2xx but undecodable payload
)

// ProviderError is the typed failure returned by every provider adapter.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int // HTTP status when applicable, 0 otherwise
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Classify maps an HTTP status plus response body to a ProviderError. The
// body is consulted because several backends return quota failures as generic
// 400s with an explanatory message.
func Classify(provider string, status int, body []byte, err error) *ProviderError {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 512 {
		msg = msg[:512]
	}
	kind := KindTransport
	switch {
	case status == 401 || status == 403:
		kind = KindAuth
	case status == 402 || status == 429:
		kind = KindQuota
	default:
		l := strings.ToLower(msg)
		if strings.Contains(l, "insufficient_quota") || strings.Contains(l, "quota") || strings.Contains(l, "credit") {
			kind = KindQuota
		}
	}
	return &ProviderError{Provider: provider, Kind: kind, Status: status, Message: msg, Err: err}
}

// IsAuth reports whether err carries an authentication failure.
func IsAuth(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindAuth
}

// IsQuota reports whether err carries a quota/credit failure.
func IsQuota(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindQuota
}

// OperatorMessage translates auth/quota failures into the actionable message
// shown to end users; other errors keep their own text.
func OperatorMessage(err error) string {
	if IsAuth(err) || IsQuota(err) {
		return "Entrar em contato com o fornecedor para ativar o uso da plataforma"
	}
	return err.Error()
}
