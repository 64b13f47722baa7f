// Package font provisions a Unicode-capable TTF for the PDF renderer.
// Resolution order: local cache file, then a readable system font copied into
// the cache, then a one-shot HTTP download from a fixed fallback URL.
package font

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"examgen/internal/domain"
)

// DefaultDownloadTimeout bounds the fallback fetch; no retries follow a failure.
const DefaultDownloadTimeout = 10 * time.Second

// Config carries the provisioning settings.
type Config struct {
	// CachePath is the local file the font ends up at.
	CachePath string
	// SystemPaths are candidate system font files, first readable wins.
	// Empty means per-OS defaults.
	SystemPaths []string
	// FallbackURL is the HTTP source used when no system font exists.
	FallbackURL string
	// Timeout bounds the download; zero means DefaultDownloadTimeout.
	Timeout time.Duration
}

// Provisioner resolves and caches the render font. Concurrent Ensure calls
// are collapsed with singleflight so the cache file is written at most once.
type Provisioner struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
	sf     singleflight.Group
}

func New(cfg Config, log *zap.Logger) *Provisioner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultDownloadTimeout
	}
	if len(cfg.SystemPaths) == 0 {
		cfg.SystemPaths = DefaultSystemPaths()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Provisioner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// SetClient overrides the HTTP client; test hook.
func (p *Provisioner) SetClient(client *http.Client) {
	p.client = client
}

// Ensure returns the path of a usable font file, provisioning it if needed.
// Subsequent calls short-circuit on the cache file. A missing system font is
// an expected branch; only a failed download surfaces ErrFontUnavailable.
func (p *Provisioner) Ensure(ctx context.Context) (string, error) {
	result, err, _ := p.sf.Do(p.cfg.CachePath, func() (interface{}, error) {
		if _, err := os.Stat(p.cfg.CachePath); err == nil {
			return p.cfg.CachePath, nil
		}

		if src, ok := p.firstSystemFont(); ok {
			err := p.copyIntoCache(src)
			if err == nil {
				p.log.Info("copied system font into cache",
					zap.String("source", src),
					zap.String("cache", p.cfg.CachePath))
				return p.cfg.CachePath, nil
			}
			p.log.Warn("system font copy failed, falling back to download",
				zap.String("source", src), zap.Error(err))
		} else {
			p.log.Debug("no system font found", zap.Strings("candidates", p.cfg.SystemPaths))
		}

		if err := p.download(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrFontUnavailable, err)
		}
		p.log.Info("downloaded fallback font",
			zap.String("url", p.cfg.FallbackURL),
			zap.String("cache", p.cfg.CachePath))
		return p.cfg.CachePath, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (p *Provisioner) firstSystemFont() (string, bool) {
	for _, candidate := range p.cfg.SystemPaths {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

func (p *Provisioner) copyIntoCache(src string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open system font: %w", err)
	}
	defer in.Close()
	return p.writeCache(in)
}

func (p *Provisioner) download(ctx context.Context) error {
	if p.cfg.FallbackURL == "" {
		return errors.New("no fallback font URL configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.FallbackURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch font: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch font: unexpected status %s", resp.Status)
	}
	return p.writeCache(resp.Body)
}

// writeCache stages into a temp file and renames so a failed write never
// leaves a truncated font at the cache path.
func (p *Provisioner) writeCache(src io.Reader) error {
	dir := filepath.Dir(p.cfg.CachePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(p.cfg.CachePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return fmt.Errorf("write font: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.cfg.CachePath); err != nil {
		return fmt.Errorf("move font into cache: %w", err)
	}
	return nil
}

// DefaultSystemPaths lists well-known Unicode TTF locations per OS.
func DefaultSystemPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts\arial.ttf`}
	case "darwin":
		return []string{
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/Library/Fonts/Arial.ttf",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/TTF/DejaVuSans.ttf",
		}
	}
}
