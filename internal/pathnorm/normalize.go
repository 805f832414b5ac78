package pathnorm

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyLocation reports a missing or blank location string.
var ErrEmptyLocation = errors.New("empty location")

// Normalize canonicalizes a raw track location into a forward-slash path
// with composed (NFC) Unicode. It accepts file:// URIs, plain filesystem
// paths, and Windows drive-letter paths. The only failure is a location
// that is blank or normalizes to nothing; decode problems fall back to
// the undecoded text.
func Normalize(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", ErrEmptyLocation
	}

	p = stripScheme(p)
	p = html.UnescapeString(p)
	p = norm.NFC.String(p)

	// file://localhost/C:/Music/... leaves a /C: artifact behind.
	if len(p) >= 3 && p[0] == '/' && isDriveLetter(p[1]) && p[2] == ':' {
		p = p[1:]
	}

	p = strings.ReplaceAll(p, `\`, "/")
	if p == "" {
		return "", fmt.Errorf("normalize %q: %w", raw, ErrEmptyLocation)
	}
	return p, nil
}

// stripScheme removes a URI scheme and host and percent-decodes the path
// component. Plain paths get best-effort percent decoding; text that fails
// to decode (a literal stray %) is kept as written.
func stripScheme(p string) string {
	u, err := url.Parse(p)
	if err == nil && u.Scheme != "" && u.Path != "" {
		return u.Path
	}
	if err != nil {
		if i := strings.Index(p, "://"); i >= 0 {
			rest := p[i+3:]
			if j := strings.IndexByte(rest, '/'); j >= 0 {
				rest = rest[j:]
			}
			p = rest
		}
	}
	if decoded, decErr := url.PathUnescape(p); decErr == nil {
		return decoded
	}
	return p
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
