package enrichment

import (
	"net/url"
	"strings"

	"edge-shortener/internal/analytics/domain"
)

// RefererClassifier classifies traffic sources from referer URLs.
type RefererClassifier struct {
	rules []sourceRule
}

type sourceRule struct {
	source  string
	domains []string
}

// NewRefererClassifier creates a new RefererClassifier with predefined
// domain lists. AI platforms come first because some live under search
// engine domains (gemini.google.com).
func NewRefererClassifier() *RefererClassifier {
	return &RefererClassifier{
		rules: []sourceRule{
			{domain.SourceAI, []string{
				"chatgpt.com",
				"chat.openai.com",
				"claude.ai",
				"gemini.google.com",
				"perplexity.ai",
				"copilot.microsoft.com",
			}},
			{domain.SourceSearch, []string{
				"google.com",
				"bing.com",
				"yahoo.com",
				"duckduckgo.com",
				"baidu.com",
				"yandex.ru",
				"ecosia.org",
			}},
			{domain.SourceSocial, []string{
				"facebook.com",
				"twitter.com",
				"t.co",
				"x.com",
				"instagram.com",
				"linkedin.com",
				"pinterest.com",
				"reddit.com",
				"tiktok.com",
				"youtube.com",
				"threads.net",
				"mastodon.social",
				"news.ycombinator.com",
			}},
		},
	}
}

// ClassifySource returns one of the domain.Source* values. A missing or
// unparsable referer is a direct visit.
func (r *RefererClassifier) ClassifySource(refererStr string) string {
	if refererStr == "" {
		return domain.SourceDirect
	}

	parsed, err := url.Parse(refererStr)
	if err != nil {
		return domain.SourceDirect
	}
	hostname := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if hostname == "" {
		return domain.SourceDirect
	}

	for _, rule := range r.rules {
		for _, d := range rule.domains {
			if hostname == d || strings.HasSuffix(hostname, "."+d) {
				return rule.source
			}
		}
	}
	return domain.SourceReferral
}
