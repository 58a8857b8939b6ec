package runner

import (
	"UpWatch/internal/checker/domain"
)

type Factory struct {
	httpRunner *HTTPRunner
	tcpRunner  *TCPRunner
	dnsRunner  *DNSRunner
}

func NewFactory(http *HTTPRunner, tcp *TCPRunner, dns *DNSRunner) *Factory {
	return &Factory{
		httpRunner: http,
		tcpRunner:  tcp,
		dnsRunner:  dns,
	}
}

// GetRunner selects a strategy by the monitor's method discriminator.
// Everything that is not TCP_PING or DNS_QUERY is an HTTP verb and goes to
// the HTTP strategy.
func (f *Factory) GetRunner(method domain.Method) Runner {
	switch method {
	case domain.MethodTCPPing:
		return f.tcpRunner
	case domain.MethodDNSQuery:
		return f.dnsRunner
	default:
		return f.httpRunner
	}
}
