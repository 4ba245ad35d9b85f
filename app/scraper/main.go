// Command scraper is a proof of concept that walks the public product
// catalog, visits every product page and writes the rows the service loads
// at startup. Failures on individual pages are logged and skipped.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"assessMatch/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

func main() {
	baseURL := flag.String("base-url", "https://www.shl.com/solutions/products/product-catalog/", "catalog start page")
	out := flag.String("out", "data/catalog.csv", "output CSV path")
	maxPages := flag.Int("max-pages", 32, "stop after this many catalog pages")
	delay := flag.Duration("delay", 2*time.Second, "pause between page fetches")
	flag.Parse()

	logger.Init("development")

	client := &http.Client{Timeout: 30 * time.Second}

	productURLs, err := collectProductURLs(client, *baseURL, *maxPages, *delay)
	if err != nil {
		logger.Fatal("collecting product urls", "error", err)
	}
	logger.Info("product urls collected", "count", len(productURLs))

	rows := make([][]string, 0, len(productURLs))
	for i, u := range productURLs {
		time.Sleep(*delay)

		row, err := scrapeProductPage(client, u)
		if err != nil {
			logger.Warn("skipping product page", "url", u, "error", err)
			continue
		}

		rows = append(rows, row)
		logger.Info("scraped product", "progress", fmt.Sprintf("%d/%d", i+1, len(productURLs)), "name", row[0])
	}

	if err := writeCSV(*out, rows); err != nil {
		logger.Fatal("writing catalog", "error", err)
	}
	logger.Info("catalog written", "path", *out, "rows", len(rows))
}

// collectProductURLs pages through the catalog listing, gathering every link
// that points at a product view page, until the pager runs out or maxPages
// is reached.
func collectProductURLs(client *http.Client, startURL string, maxPages int, delay time.Duration) ([]string, error) {
	seen := make(map[string]struct{})
	var urls []string

	pageURL := startURL
	for page := 1; page <= maxPages; page++ {
		doc, err := fetch(client, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog page %d: %w", page, err)
		}

		found := 0
		for _, a := range findAll(doc, "a") {
			href := attr(a, "href")
			if href == "" || !strings.Contains(href, "/view/") {
				continue
			}
			abs, err := resolveURL(pageURL, href)
			if err != nil {
				continue
			}
			if _, ok := seen[abs]; ok {
				continue
			}
			seen[abs] = struct{}{}
			urls = append(urls, abs)
			found++
		}
		logger.Info("catalog page scraped", "page", page, "new_products", found)

		next := nextPageURL(doc, pageURL)
		if next == "" {
			logger.Info("reached last catalog page", "page", page)
			break
		}
		pageURL = next
		time.Sleep(delay)
	}

	return urls, nil
}

// nextPageURL finds the pager's next link; empty when the pager reports the
// last page.
func nextPageURL(doc *html.Node, current string) string {
	for _, a := range findAll(doc, "a") {
		if !strings.Contains(attr(a, "class"), "pagination__arrow--next") &&
			!strings.Contains(attr(a, "class"), "c-pager__next") {
			continue
		}
		if attr(a, "aria-disabled") == "true" {
			return ""
		}
		href := attr(a, "href")
		if href == "" {
			return ""
		}
		abs, err := resolveURL(current, href)
		if err != nil {
			return ""
		}
		return abs
	}
	return ""
}

// scrapeProductPage extracts one catalog row:
// name, url, description, adaptive_support, duration, remote_support, test_type.
func scrapeProductPage(client *http.Client, pageURL string) ([]string, error) {
	doc, err := fetch(client, pageURL)
	if err != nil {
		return nil, err
	}

	name := ""
	if h1 := first(doc, "h1"); h1 != nil {
		name = textContent(h1)
	}
	if name == "" {
		return nil, fmt.Errorf("no product name found")
	}

	description := ""
	duration := 0
	remote := "No"
	adaptive := "No"
	var testTypes []string

	// Product pages lay out their facts as heading/paragraph pairs.
	for _, h4 := range findAll(doc, "h4") {
		label := strings.ToLower(textContent(h4))
		value := textContent(nextElementSibling(h4))

		switch {
		case strings.Contains(label, "description"):
			description = value
		case strings.Contains(label, "assessment length"):
			duration = extractMinutes(value)
		case strings.Contains(label, "remote testing"):
			remote = yesIf(value != "")
		case strings.Contains(label, "test type"):
			for _, t := range strings.Split(value, ",") {
				if t = strings.TrimSpace(t); t != "" {
					testTypes = append(testTypes, t)
				}
			}
		}
	}

	// Fall back to the rating widgets the listing uses for support flags.
	for _, span := range findAll(doc, "span") {
		class := attr(span, "class")
		val := attr(span, "data-value")
		if strings.Contains(class, "remote") && val != "" && val != "0" {
			remote = "Yes"
		}
		if strings.Contains(class, "adaptive") && val != "" && val != "0" {
			adaptive = "Yes"
		}
	}

	return []string{
		name,
		pageURL,
		description,
		adaptive,
		strconv.Itoa(duration),
		remote,
		formatTestTypes(testTypes),
	}, nil
}

func fetch(client *http.Client, pageURL string) (*html.Node, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return html.Parse(resp.Body)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "url", "description", "adaptive_support", "duration", "remote_support", "test_type"}); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()

	return w.Error()
}

// ---- html helpers ----

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func first(n *html.Node, tag string) *html.Node {
	all := findAll(n, tag)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func attr(n *html.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}

func extractMinutes(s string) int {
	for _, f := range strings.Fields(s) {
		if n, err := strconv.Atoi(strings.Trim(f, "=.,")); err == nil {
			return n
		}
	}
	return 0
}

func yesIf(cond bool) string {
	if cond {
		return "Yes"
	}
	return "No"
}

func formatTestTypes(types []string) string {
	if len(types) == 0 {
		return "[]"
	}
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, "; ") + "]"
}
