// Package sitecheck crawls the generated site and reports broken links.
//
// The site directory is served on a loopback listener so the crawler
// resolves relative hrefs exactly the way a browser would.
package sitecheck

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Checker represents the site link checker
type Checker struct {
	siteDir string
	logger  *zap.Logger
}

// BrokenLink represents one unresolvable link
type BrokenLink struct {
	URL    string
	Status int
	Reason string
}

// Report summarizes a crawl
type Report struct {
	Visited int
	Broken  []BrokenLink
}

// New creates a checker for the site directory
func New(siteDir string, logger *zap.Logger) *Checker {
	return &Checker{siteDir: siteDir, logger: logger}
}

// Run crawls the site starting from index.html and follows every internal
// link. External links are not followed.
func (c *Checker) Run() (*Report, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start site listener: %w", err)
	}

	server := &http.Server{Handler: http.FileServer(http.Dir(c.siteDir))}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("Site server stopped", zap.Error(err))
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			c.logger.Warn("Failed to stop site server", zap.Error(err))
		}
	}()

	base := "http://" + listener.Addr().String()
	report := &Report{}

	collector := colly.NewCollector(
		colly.AllowedDomains("127.0.0.1"),
	)

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			if !strings.HasPrefix(href, base) {
				return
			}
		}
		var alreadyVisited *colly.AlreadyVisitedError
		if err := e.Request.Visit(href); err != nil &&
			!errors.As(err, &alreadyVisited) && !errors.Is(err, colly.ErrForbiddenDomain) {
			c.logger.Debug("Link not followed",
				zap.String("href", href), zap.Error(err))
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		report.Visited++
	})

	collector.OnError(func(r *colly.Response, err error) {
		broken := BrokenLink{
			URL:    r.Request.URL.String(),
			Status: r.StatusCode,
		}
		if err != nil {
			broken.Reason = err.Error()
		}
		report.Broken = append(report.Broken, broken)
	})

	if err := collector.Visit(base + "/index.html"); err != nil {
		return nil, fmt.Errorf("failed to start crawl: %w", err)
	}

	c.logger.Info("Site check finished",
		zap.Int("visited", report.Visited),
		zap.Int("broken", len(report.Broken)))
	return report, nil
}
