package provider

import (
	"bytes"
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	catalog "mediashelf-backend/internal/domains/catalog/model"
	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

// articleProvider fetches the article's own page and reads OpenGraph /
// standard meta tags. There is no search step: the URL is the identity.
type articleProvider struct {
	http *upstreamClient
}

func NewArticleProvider(cooldown *CooldownStore) ArticleProvider {
	return &articleProvider{
		http: newUpstreamClient("article", 2, 4, cooldown),
	}
}

func (p *articleProvider) FetchDetails(ctx context.Context, article *catalog.Article) (catalog.ArticleDetails, error) {
	body, err := p.http.get(ctx, article.URL)
	if err != nil {
		if _, ok := emodel.AsRateLimit(err); ok {
			return catalog.ArticleDetails{}, err
		}
		log.Warn().Err(err).Str("url", article.URL).Msg("article page contributed nothing")
		return catalog.ArticleDetails{}, nil
	}

	meta, err := parsePageMeta(body)
	if err != nil {
		log.Warn().Err(err).Str("url", article.URL).Msg("article page unparseable")
		return catalog.ArticleDetails{}, nil
	}

	var details catalog.ArticleDetails
	setIfPresent := func(dst **string, val string) {
		if val != "" {
			v := val
			*dst = &v
		}
	}
	setIfPresent(&details.Title, meta.title)
	setIfPresent(&details.Author, meta.author)
	setIfPresent(&details.Description, meta.description)
	setIfPresent(&details.ImageURL, meta.image)
	setIfPresent(&details.SiteName, meta.siteName)
	setIfPresent(&details.PublishedAt, meta.published)
	setIfPresent(&details.CanonicalURL, meta.canonical)
	return details, nil
}

type pageMeta struct {
	title       string
	author      string
	description string
	image       string
	siteName    string
	published   string
	canonical   string
}

// parsePageMeta walks the document head. OpenGraph properties win over plain
// meta names; <title> is the fallback title.
func parsePageMeta(body []byte) (*pageMeta, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	meta := &pageMeta{}
	var titleTag string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && titleTag == "" {
					titleTag = n.FirstChild.Data
				}
			case "meta":
				key := attr(n, "property")
				if key == "" {
					key = attr(n, "name")
				}
				content := attr(n, "content")
				if content == "" {
					break
				}
				switch key {
				case "og:title":
					meta.title = content
				case "og:description":
					meta.description = content
				case "og:image":
					meta.image = content
				case "og:site_name":
					meta.siteName = content
				case "og:url":
					meta.canonical = content
				case "article:published_time":
					meta.published = content
				case "author", "article:author":
					if meta.author == "" {
						meta.author = content
					}
				case "description":
					if meta.description == "" {
						meta.description = content
					}
				}
			case "link":
				if attr(n, "rel") == "canonical" && meta.canonical == "" {
					meta.canonical = attr(n, "href")
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if meta.title == "" {
		meta.title = titleTag
	}
	return meta, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
