package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JayWelborn/Rango/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowAddCategory renders the empty add-category form.
func (a *API) ShowAddCategory(c *gin.Context) {
	c.HTML(http.StatusOK, "add_category.html", gin.H{})
}

// AddCategory creates a category from the submitted form. New categories
// start with zero views and likes; validation failures re-render the form
// with the offending name so the user can fix it.
func (a *API) AddCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))

	if _, err := a.catalog.UpsertCategory(name, 0, 0); err != nil {
		status := http.StatusInternalServerError
		message := "failed to save category"
		if errors.Is(err, service.ErrInvalidCategoryName) {
			status = http.StatusBadRequest
			message = "please enter a category name with at least one letter or digit"
		}
		c.HTML(status, "add_category.html", gin.H{
			"error": message,
			"name":  name,
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ShowAddPage renders the add-page form for a category.
func (a *API) ShowAddPage(c *gin.Context) {
	category, err := a.catalog.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "add_page.html", gin.H{"error": "unknown category"})
		return
	}

	c.HTML(http.StatusOK, "add_page.html", gin.H{"category": category})
}

// AddPage creates or updates a page inside a category. An invalid category
// or missing title re-renders the entry form; nothing partial is persisted.
func (a *API) AddPage(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	url := strings.TrimSpace(c.PostForm("url"))

	category, err := a.catalog.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "add_page.html", gin.H{
			"error": "unknown category",
			"title": title,
			"url":   url,
		})
		return
	}

	if _, err := a.catalog.UpsertPage(category, title, url, 0); err != nil {
		status := http.StatusInternalServerError
		message := "failed to save page"
		switch {
		case errors.Is(err, service.ErrPageTitleRequired):
			status = http.StatusBadRequest
			message = "please enter a page title"
		case errors.Is(err, service.ErrCategoryRequired):
			status = http.StatusBadRequest
			message = "unknown category"
		}
		c.HTML(status, "add_page.html", gin.H{
			"error":    message,
			"category": category,
			"title":    title,
			"url":      url,
		})
		return
	}

	c.Redirect(http.StatusFound, "/category/"+category.Slug)
}
