package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JayWelborn/Rango/internal/service"
	"github.com/gin-gonic/gin"
)

// TrackURL records an outbound click: it bumps the page's view counter and
// redirects to the page URL. Anything wrong with the id sends the visitor
// back to the index instead of erroring.
func (a *API) TrackURL(c *gin.Context) {
	pageID, err := parseUintQuery(c, "page_id")
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	_, page, err := a.engagement.IncrementPageViews(pageID)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, page.URL)
}

// LikeCategory handles the AJAX like button: increments the category's like
// counter and returns the new count as a plain text body.
func (a *API) LikeCategory(c *gin.Context) {
	categoryID, err := parseUintQuery(c, "cat_id")
	if err != nil {
		c.String(http.StatusBadRequest, "0")
		return
	}

	likes, err := a.engagement.IncrementCategoryLikes(categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.String(http.StatusNotFound, "0")
			return
		}
		c.String(http.StatusInternalServerError, "0")
		return
	}

	c.String(http.StatusOK, strconv.Itoa(likes))
}
