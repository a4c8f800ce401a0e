package importer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jobboard/internal/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; jobboard-importer/1.0)"

// RenderFunc returns the outer HTML of a page after scripts have run.
type RenderFunc func(ctx context.Context, pageURL string) (string, error)

// Importer reads job postings from public pages. Every fetch waits on a
// shared rate limiter.
type Importer struct {
	timeout    time.Duration
	userAgent  string
	vocabulary []string
	limiter    *rate.Limiter
	render     RenderFunc
	logger     *zap.Logger
}

type Option func(*Importer)

// WithVocabulary sets the skill names looked for in descriptions.
func WithVocabulary(skills []string) Option {
	return func(i *Importer) { i.vocabulary = append([]string(nil), skills...) }
}

// WithRenderer replaces the headless renderer. A nil renderer disables the
// headless fallback.
func WithRenderer(r RenderFunc) Option {
	return func(i *Importer) { i.render = r }
}

func New(cfg config.ImportConfig, logger *zap.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	i := &Importer{
		timeout:   timeout,
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger,
	}
	if cfg.Headless {
		i.render = i.renderHeadless
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Fetch downloads pageURL and extracts a Posting. Pages whose static HTML
// has no description are rendered headlessly when a renderer is set.
func (i *Importer) Fetch(ctx context.Context, pageURL string) (Posting, error) {
	u, err := normalizeURL(pageURL)
	if err != nil {
		return Posting{}, err
	}
	if err := i.limiter.Wait(ctx); err != nil {
		return Posting{}, err
	}

	start := time.Now()
	p, err := i.fetchStatic(ctx, u)
	if err != nil {
		return Posting{}, err
	}

	if p.Description == "" && i.render != nil {
		i.logger.Info("import: rendering page headlessly", zap.String("url", u.String()))
		html, rerr := i.render(ctx, u.String())
		if rerr != nil {
			i.logger.Warn("import: headless render failed", zap.String("url", u.String()), zap.Error(rerr))
		} else if rp, perr := extractHTML(html, u.String()); perr == nil {
			rp.Rendered = true
			p = rp
		}
	}

	if p.Title == "" || p.Description == "" {
		return Posting{}, ErrNoContent
	}

	if len(p.Skills) == 0 && len(i.vocabulary) > 0 {
		p.Skills, p.RequiredSkills = ExtractSkills(p.Title+"\n"+p.Description, i.vocabulary)
	}

	i.logger.Info("import: page fetched",
		zap.String("url", u.String()),
		zap.Bool("rendered", p.Rendered),
		zap.Int("skills", len(p.Skills)),
		zap.Duration("took", time.Since(start)),
	)
	return p, nil
}

func (i *Importer) fetchStatic(ctx context.Context, u *url.URL) (Posting, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(u.Hostname()),
		colly.UserAgent(i.userAgent),
	)
	c.SetRequestTimeout(i.timeout)

	var (
		p     Posting
		found bool
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		p = extract(e.DOM, e.Request.URL.String())
		found = true
	})

	done := make(chan error, 1)
	go func() {
		done <- c.Visit(u.String())
	}()

	select {
	case <-ctx.Done():
		return Posting{}, ctx.Err()
	case err := <-done:
		if err != nil {
			return Posting{}, fmt.Errorf("%w: %s: %v", ErrFetch, u.String(), err)
		}
	}
	if !found {
		return Posting{}, ErrNoContent
	}
	return p, nil
}

func (i *Importer) renderHeadless(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(i.userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, i.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

func extractHTML(html, pageURL string) (Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Posting{}, err
	}
	return extract(doc.Selection, pageURL), nil
}

func normalizeURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return nil, ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	u.Fragment = ""
	return u, nil
}
