package service

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/MEKSAAA/Anti-Fake/internal/pkg/config"
)

// trustedSource is a well-known outlet used when live search yields
// nothing usable.
type trustedSource struct {
	Name string
	URL  string
}

// trustedSources backs the no-results fallback, grouped by outlet
// category.
var trustedSources = []struct {
	Category string
	Sources  []trustedSource
}{
	{"官方媒体", []trustedSource{
		{"新华网", "https://www.xinhuanet.com"},
		{"人民网", "http://www.people.com.cn"},
		{"央视网", "https://www.cctv.com"},
	}},
	{"权威门户", []trustedSource{
		{"中国新闻网", "https://www.chinanews.com.cn"},
		{"澎湃新闻", "https://www.thepaper.cn"},
		{"光明网", "https://www.gmw.cn"},
	}},
	{"辟谣平台", []trustedSource{
		{"中国互联网联合辟谣平台", "https://www.piyao.org.cn"},
		{"科学辟谣平台", "https://piyao.kepuchina.cn"},
	}},
	{"财经科技", []trustedSource{
		{"财新网", "https://www.caixin.com"},
		{"第一财经", "https://www.yicai.com"},
	}},
}

const searchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// EvidenceGatherer collects reference links and snippets for a piece of
// news text. Gathering is strictly best effort: search failures degrade
// to the trusted-source table and never surface as errors.
type EvidenceGatherer struct {
	searchURL  string
	maxLinks   int
	httpClient *http.Client
}

// NewEvidenceGatherer builds a gatherer from the evidence configuration.
func NewEvidenceGatherer(cfg config.EvidenceConfig) *EvidenceGatherer {
	return &EvidenceGatherer{
		searchURL:  cfg.SearchURL,
		maxLinks:   cfg.MaxLinks,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// NewEvidenceGathererWithClient is used by tests to inject a mock
// transport.
func NewEvidenceGathererWithClient(cfg config.EvidenceConfig, client *http.Client) *EvidenceGatherer {
	g := NewEvidenceGatherer(cfg)
	g.httpClient = client
	return g
}

// SearchKey derives the query from the news text: the first sentence,
// capped at 50 characters.
func SearchKey(text string) string {
	trimmed := strings.TrimSpace(text)
	if idx := strings.IndexAny(trimmed, "。！？!?\n"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	runes := []rune(trimmed)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes)
}

type searchHit struct {
	Title    string
	URL      string
	Abstract string
}

// Fetch returns an evidence summary suitable for prompt interpolation
// plus the reference links. It never fails: when search is unreachable
// or empty the summary points at trusted outlets instead.
func (g *EvidenceGatherer) Fetch(text string) (string, []string) {
	hits := g.search(SearchKey(text))

	if len(hits) == 0 {
		links := g.fallbackLinks(nil, g.maxLinks)
		return "未能从网络搜索到相关信息，请结合已有知识判断。可参考以下权威媒体：" + strings.Join(links, "、"), links
	}

	var sb strings.Builder
	links := make([]string, 0, g.maxLinks)
	for i, hit := range hits {
		if i >= g.maxLinks {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n%s\n", i+1, hit.Title, hit.Abstract)
		links = append(links, hit.URL)
	}
	if len(links) < g.maxLinks {
		links = append(links, g.fallbackLinks(links, g.maxLinks-len(links))...)
	}
	return sb.String(), links
}

// Gather returns reference links only.
func (g *EvidenceGatherer) Gather(text string) []string {
	_, links := g.Fetch(text)
	return links
}

// search scrapes the result page. Any failure returns nil; callers fall
// back to trusted sources.
func (g *EvidenceGatherer) search(query string) []searchHit {
	req, err := http.NewRequest(http.MethodGet, g.searchURL+"?wd="+url.QueryEscape(query), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		zap.L().Warn("evidence search unreachable, using trusted sources",
			zap.String("query", query), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("evidence search returned non-200",
			zap.Int("status", resp.StatusCode))
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	var hits []searchHit
	doc.Find("div.result.c-container").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		anchor := s.Find("h3.t a").First()
		href, ok := anchor.Attr("href")
		if !ok || !strings.HasPrefix(href, "http") {
			return true
		}
		hits = append(hits, searchHit{
			Title:    strings.TrimSpace(anchor.Text()),
			URL:      href,
			Abstract: strings.TrimSpace(s.Find("div.c-abstract").First().Text()),
		})
		return len(hits) < g.maxLinks
	})
	return hits
}

// fallbackLinks picks up to n random trusted-source URLs not already
// present in exclude.
func (g *EvidenceGatherer) fallbackLinks(exclude []string, n int) []string {
	seen := make(map[string]bool, len(exclude))
	for _, u := range exclude {
		seen[u] = true
	}

	var pool []string
	for _, cat := range trustedSources {
		for _, src := range cat.Sources {
			if !seen[src.URL] {
				pool = append(pool, src.URL)
			}
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
