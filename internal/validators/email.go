package validators

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// EmailDomainCheck reports whether an address can plausibly receive mail.
type EmailDomainCheck func(ctx context.Context, email string) bool

var resolver = net.DefaultResolver

// IsEmailDomainValid looks for an MX record on the address's domain and
// falls back to a plain host record. A lookup that times out counts as
// valid so a slow resolver never blocks registration.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	host := emailHost(email)
	if host == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	mx, err := resolver.LookupMX(ctx, host)
	if err == nil && len(mx) > 0 {
		return true
	}
	if isTimeout(err) {
		return true
	}

	addrs, err := resolver.LookupHost(ctx, host)
	if err == nil && len(addrs) > 0 {
		return true
	}
	return isTimeout(err)
}

func emailHost(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	host := strings.TrimSuffix(strings.ToLower(email[at+1:]), ".")
	if !strings.Contains(host, ".") {
		return ""
	}
	return host
}

func isTimeout(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsTimeout
}
