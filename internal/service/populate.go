package service

import "fmt"

type seedPage struct {
	Title string
	URL   string
	Views int
}

type seedCategory struct {
	Name  string
	Views int
	Likes int
	Pages []seedPage
}

// seedCatalog is the fixed starter catalog. Running Populate repeatedly is
// safe: both upserts converge on the same stored rows.
var seedCatalog = []seedCategory{
	{
		Name: "Python", Views: 128, Likes: 64,
		Pages: []seedPage{
			{Title: "Official Python Tutorial", URL: "http://docs.python.org/2/tutorial/", Views: 128},
			{Title: "How to Think Like a Computer Scientist", URL: "http://www.greenteapress.com/thinkpython", Views: 64},
			{Title: "Learn Python in 10 Minutes", URL: "https://www.stavros.io/tutorials/python/", Views: 32},
		},
	},
	{
		Name: "Django", Views: 64, Likes: 32,
		Pages: []seedPage{
			{Title: "Official Django Tutorial", URL: "https://docs.djangoproject.com/en/1.11/intro/tutorial01/", Views: 128},
			{Title: "Django Rocks", URL: "http://www.djangorocks.com/", Views: 64},
			{Title: "How to Tango with Django", URL: "http://www.tangowithdjango.com", Views: 32},
		},
	},
	{
		Name: "Other Frameworks", Views: 32, Likes: 16,
		Pages: []seedPage{
			{Title: "Bottle", URL: "http://bottlepy.org/docs/dev", Views: 128},
			{Title: "Flask", URL: "https://flask.pocoo.org", Views: 64},
		},
	},
	{
		Name: "Perl", Views: 8, Likes: 2,
		Pages: []seedPage{
			{Title: "Perl Foundation", URL: "https://www.perl.org/", Views: 12},
		},
	},
	{
		Name: "PHP", Views: 12, Likes: 0,
		Pages: []seedPage{
			{Title: "PHP Manual", URL: "http://php.net/manual/en/intro-whatis.php", Views: 0},
		},
	},
	{
		Name: "Programming", Views: 128, Likes: 128,
		Pages: []seedPage{
			{Title: "Python Foundation", URL: "https://www.python.org", Views: 128},
		},
	},
}

// Populate upserts the seed catalog: every category first, then its pages.
// The first failure aborts and is returned with enough context to find the
// offending entry.
func (s *CatalogService) Populate() error {
	for _, seed := range seedCatalog {
		category, err := s.UpsertCategory(seed.Name, seed.Views, seed.Likes)
		if err != nil {
			return fmt.Errorf("populate category %q: %w", seed.Name, err)
		}

		for _, page := range seed.Pages {
			if _, err := s.UpsertPage(category, page.Title, page.URL, page.Views); err != nil {
				return fmt.Errorf("populate page %q in %q: %w", page.Title, seed.Name, err)
			}
		}
	}

	return nil
}
