// Package webfonts downloads a Google Fonts stylesheet together with the
// font files it references, so a theme can serve its fonts itself.
package webfonts

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/oltre/internal/security"
	fetch "github.com/jmylchreest/oltre/internal/util/http"
)

// StylesheetName is the rewritten stylesheet written next to the fonts.
const StylesheetName = "fonts.css"

// BrowserUserAgent makes Google Fonts answer with woff2 sources.
const BrowserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// MaxFontSize bounds a single font download.
const MaxFontSize = 8 << 20

var srcURL = regexp.MustCompile(`url\(\s*['"]?(https?://[^)'"\s]+)['"]?\s*\)`)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Options configures Download.
type Options struct {
	// URLPrefix is prepended to font file names in the rewritten
	// stylesheet. Empty means "./".
	URLPrefix string

	UserAgent string
	Timeout   time.Duration
	Logger    hclog.Logger
}

// Result lists what Download wrote.
type Result struct {
	Stylesheet string   `json:"stylesheet"`
	Fonts      []string `json:"fonts"`
}

// Download fetches cssURL, saves every font it references into dir and
// writes a copy of the stylesheet pointing at the local files.
func Download(ctx context.Context, cssURL, dir string, opts Options) (*Result, error) {
	if cssURL == "" {
		return nil, fmt.Errorf("no web fonts to download")
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = BrowserUserAgent
	}
	prefix := opts.URLPrefix
	if prefix == "" {
		prefix = "./"
	}

	css, err := fetch.Fetch(ctx, cssURL, fetch.FetchOptions{
		Timeout:   opts.Timeout,
		UserAgent: ua,
		Headers:   map[string]string{"Accept": "text/css,*/*;q=0.1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stylesheet: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create font directory: %w", err)
	}

	res := &Result{Stylesheet: filepath.Join(dir, StylesheetName)}
	local := make(map[string]string)
	for _, m := range srcURL.FindAllStringSubmatch(string(css), -1) {
		remote := m[1]
		if _, done := local[remote]; done {
			continue
		}

		name, err := FileName(remote)
		if err != nil {
			return nil, err
		}
		if err := security.ValidateFilePath(name, dir); err != nil {
			return nil, err
		}

		data, err := fetch.Fetch(ctx, remote, fetch.FetchOptions{
			Timeout:   opts.Timeout,
			UserAgent: ua,
			MaxBytes:  MaxFontSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch font: %w", err)
		}

		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, data, 0o644); err != nil { // #nosec G306 -- fonts are served to browsers
			return nil, fmt.Errorf("failed to write font: %w", err)
		}
		logger.Debug("saved font", "url", remote, "path", target, "bytes", len(data))

		local[remote] = name
		res.Fonts = append(res.Fonts, target)
	}

	rewritten := srcURL.ReplaceAllStringFunc(string(css), func(match string) string {
		m := srcURL.FindStringSubmatch(match)
		return "url(" + prefix + local[m[1]] + ")"
	})
	if err := os.WriteFile(res.Stylesheet, []byte(rewritten), 0o644); err != nil { // #nosec G306 -- fonts are served to browsers
		return nil, fmt.Errorf("failed to write stylesheet: %w", err)
	}

	return res, nil
}

// FileName derives a flat, unique-per-URL file name for a font source.
// Google paths such as /s/inter/v13/UcC73FwrK3iLTeHuS_fvQtMwCp50KnMa1ZL7.woff2
// become inter-v13-UcC73FwrK3iLTeHuS_fvQtMwCp50KnMa1ZL7.woff2.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid font URL %q: %w", rawURL, err)
	}

	p := strings.TrimPrefix(path.Clean(u.Path), "/")
	p = strings.TrimPrefix(p, "s/")
	if p == "" || p == "." {
		return "", fmt.Errorf("font URL %q has no file name", rawURL)
	}

	name := unsafeChars.ReplaceAllString(strings.ReplaceAll(p, "/", "-"), "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "", fmt.Errorf("font URL %q has no usable file name", rawURL)
	}
	return name, nil
}
