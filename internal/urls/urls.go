package urls

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// AutoDomain asks ResolveDomain to derive the domain from the local IP.
const AutoDomain = "auto"

// Builder turns a file id into the public links handed to producers.
type Builder struct {
	domain string
}

func NewBuilder(domain string) *Builder {
	return &Builder{domain: strings.TrimRight(domain, "/")}
}

func (b *Builder) Domain() string {
	return b.domain
}

// StreamURL is the inline playback link.
func (b *Builder) StreamURL(id uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/files/%s%s", b.domain, id, ext)
}

// DownloadURL is the forced-download link.
func (b *Builder) DownloadURL(id uuid.UUID, ext string) string {
	return fmt.Sprintf("%s/download/%s%s", b.domain, id, ext)
}

var dial = func(network, address string) (net.Conn, error) {
	return net.DialTimeout(network, address, 2*time.Second)
}

// ResolveDomain returns domain unchanged unless it is empty or "auto", in which
// case it builds http://<local ip>:<port>.
func ResolveDomain(ctx context.Context, domain string, port int) string {
	if domain != "" && !strings.EqualFold(domain, AutoDomain) {
		return domain
	}
	ip := LocalIP()
	logger.Infof(ctx, "🌐 auto-detected local IP: %s", ip)
	return fmt.Sprintf("http://%s:%d", ip, port)
}

// LocalIP returns the address of the interface used for outbound traffic.
// A UDP dial sends no packet, it only selects a route.
func LocalIP() string {
	conn, err := dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "127.0.0.1"
	}
	return addr.IP.String()
}
