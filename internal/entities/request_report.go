package entities

import (
	"net"
	"net/http"
	"sort"
	"strings"
)

// Header is a single header line of a request. A header sent with several values yields one Header per value.
type Header struct {
	Name  string
	Value string
}

// RequestReport is what gets logged about an incoming request before it is answered.
type RequestReport struct {
	PeerIP   string
	PeerPort string
	// Target is the request-target exactly as it appeared on the request line, query included.
	Target  string
	Headers []Header
}

// NewRequestReport captures the peer address, request-target and headers of req.
//
// net/http keeps headers in a map and moves Host out of it, so Host is listed first and the remaining
// headers follow sorted by name. Values are kept in the order they were received.
func NewRequestReport(req *http.Request) RequestReport {
	report := RequestReport{
		Target: req.RequestURI,
	}
	if report.Target == "" && req.URL != nil {
		report.Target = req.URL.RequestURI()
	}

	host, port, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		report.PeerIP = req.RemoteAddr
	} else {
		report.PeerIP = host
		report.PeerPort = port
	}

	if req.Host != "" {
		report.Headers = append(report.Headers, Header{Name: "Host", Value: req.Host})
	}

	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range req.Header[name] {
			report.Headers = append(report.Headers, Header{Name: name, Value: value})
		}
	}

	return report
}

// PeerAddress returns the peer as ip:port, or just the raw address when it carried no port.
func (r RequestReport) PeerAddress() string {
	if r.PeerPort == "" {
		return r.PeerIP
	}
	return r.PeerIP + ":" + r.PeerPort
}

// String renders the report as the block of lines written to the request log. Every line, the last
// included, ends with a newline.
func (r RequestReport) String() string {
	var b strings.Builder
	b.WriteString("Received request from ")
	b.WriteString(r.PeerAddress())
	b.WriteString("\nPath: ")
	b.WriteString(r.Target)
	b.WriteString("\nHeaders:\n")
	for _, h := range r.Headers {
		b.WriteString("  ")
		b.WriteString(h.Name)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString("\n")
	}
	return b.String()
}
