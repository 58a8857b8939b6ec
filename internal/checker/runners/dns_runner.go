package runner

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/miekg/dns"

	"UpWatch/internal/checker/domain"
)

const DefaultResolver = "8.8.8.8:53"

// DNSRunner checks that the target name resolves. A NOERROR answer with at
// least one record is up; NXDOMAIN/SERVFAIL and empty answers are down.
type DNSRunner struct {
	resolver string
}

func NewDNSRunner(resolver string) *DNSRunner {
	if resolver == "" {
		resolver = DefaultResolver
	}
	return &DNSRunner{resolver: resolver}
}

func (r *DNSRunner) Execute(ctx context.Context, monitor *domain.Monitor) domain.CheckResult {
	name := queryName(monitor.URL)
	if name == "" {
		return domain.NewDownResult(monitor.ID, 0, 0, fmt.Sprintf("invalid target: %q", monitor.URL))
	}

	client := &dns.Client{Timeout: monitor.Timeout()}

	msg := dns.Msg{}
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)

	response, rtt, err := client.ExchangeContext(ctx, &msg, r.resolver)
	if err != nil {
		reason := err.Error()
		if isTimeout(err) {
			reason = timeoutReason
		}
		return domain.NewDownResult(monitor.ID, 0, 0, reason)
	}

	latency := rtt.Milliseconds()

	if response.Rcode != dns.RcodeSuccess {
		return domain.NewDownResult(monitor.ID, 0, latency, fmt.Sprintf("DNS error: %s", dns.RcodeToString[response.Rcode]))
	}
	if len(response.Answer) == 0 {
		return domain.NewDownResult(monitor.ID, 0, latency, "DNS error: no records")
	}

	return domain.NewUpResult(monitor.ID, 0, latency)
}

// queryName strips any URL decoration down to the bare host name.
func queryName(target string) string {
	target = strings.TrimSpace(target)
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	if host, _, err := net.SplitHostPort(target); err == nil {
		return host
	}
	return target
}
