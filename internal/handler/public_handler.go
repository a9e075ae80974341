package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/JayWelborn/Rango/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(ghtml.WithHardWraps(), ghtml.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const aboutMarkdown = `## About Rango

Rango is a directory of categorised links. Browse a category to see its
pages alongside related results pulled from the web, like the ones you
find useful, and add your own once registered.

Built while tangoing with a certain web framework.`

// renderMarkdown converts markdown to sanitized HTML for templates.
func renderMarkdown(markdown string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(markdown))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// Index shows the five most liked categories and five most viewed pages,
// plus the session's visit count.
func (a *API) Index(c *gin.Context) {
	categories, err := a.engagement.TopCategoriesByLikes(5)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"error": "failed to load categories"})
		return
	}

	pages, err := a.engagement.TopPagesByViews(5)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"error": "failed to load pages"})
		return
	}

	visits := service.TrackVisit(sessions.Default(c), time.Now())

	c.HTML(http.StatusOK, "index.html", gin.H{
		"categories": categories,
		"pages":      pages,
		"visits":     visits,
	})
}

// About renders the about page and keeps the visit counter ticking there too.
func (a *API) About(c *gin.Context) {
	visits := service.TrackVisit(sessions.Default(c), time.Now())

	c.HTML(http.StatusOK, "about.html", gin.H{
		"content": renderMarkdown(aboutMarkdown),
		"visits":  visits,
	})
}

// ShowCategory renders a category's local pages next to external search
// results. A submitted query drives the search; otherwise the category name
// itself is used so the page always has some related content. The two lists
// stay separate: local pages are never interleaved with external hits.
func (a *API) ShowCategory(c *gin.Context) {
	data := gin.H{}

	category, err := a.catalog.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if !errors.Is(err, service.ErrCategoryNotFound) {
			c.HTML(http.StatusInternalServerError, "category.html", gin.H{"error": "failed to load category"})
			return
		}
		// Unknown slug still renders the template, just without a category.
		c.HTML(http.StatusOK, "category.html", data)
		return
	}

	pages, err := a.catalog.PagesForCategory(category.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "category.html", gin.H{"error": "failed to load pages"})
		return
	}

	query := ""
	if c.Request.Method == http.MethodPost {
		query = strings.TrimSpace(c.PostForm("query"))
	}
	results := a.search.SearchOrDefault(c.Request.Context(), query, category.Name)

	data["category"] = category
	data["pages"] = pages
	data["query"] = query
	data["results"] = sanitizeResults(results)

	c.HTML(http.StatusOK, "category.html", data)
}

// SearchPage is the standalone search form: empty on GET, query results on
// POST. Connector failures surface as an empty result list, never an error
// page.
func (a *API) SearchPage(c *gin.Context) {
	results := []service.SearchResult{}
	query := ""

	if c.Request.Method == http.MethodPost {
		query = strings.TrimSpace(c.PostForm("query"))
		if query != "" {
			results = a.search.SearchOrDefault(c.Request.Context(), query, "")
		}
	}

	c.HTML(http.StatusOK, "search.html", gin.H{
		"query":   query,
		"results": sanitizeResults(results),
	})
}

// Suggest returns up to eight categories matching the typed prefix, for the
// suggestion dropdown.
func (a *API) Suggest(c *gin.Context) {
	categories, err := a.catalog.SuggestCategories(c.Query("suggestion"), 8)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "cats.html", gin.H{"error": "failed to load suggestions"})
		return
	}

	c.HTML(http.StatusOK, "cats.html", gin.H{"cats": categories})
}

// sanitizeResults scrubs externally sourced snippets before they reach a
// template. Webhose text is untrusted input.
func sanitizeResults(results []service.SearchResult) []service.SearchResult {
	cleaned := make([]service.SearchResult, 0, len(results))
	for _, r := range results {
		cleaned = append(cleaned, service.SearchResult{
			Title:   sanitizer.Sanitize(r.Title),
			Link:    r.Link,
			Summary: sanitizer.Sanitize(r.Summary),
		})
	}
	return cleaned
}
