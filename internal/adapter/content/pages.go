package content

import (
	"strings"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
)

// Page slugs
const (
	SlugPrediction     = "prediction"
	SlugInformation    = "information"
	SlugVisualisations = "visualisations"
	SlugContact        = "contact"
)

type staticPages struct {
	menu  []entity.MenuItem
	pages map[string]*entity.Page
}

// NewStaticPages builds the content pages. formAction is where the
// enquiry form posts; an empty action leaves the form out.
func NewStaticPages(formAction string, models []entity.ModelID) repository.PageRepository {
	s := &staticPages{pages: make(map[string]*entity.Page)}

	add := func(p *entity.Page) {
		s.menu = append(s.menu, entity.MenuItem{Slug: p.Slug, Title: p.Title, Icon: p.Icon})
		s.pages[p.Slug] = p
	}
	add(predictionPage(models))
	add(informationPage())
	add(visualisationsPage())
	add(contactPage(formAction))
	return s
}

func (s *staticPages) Menu() []entity.MenuItem {
	out := make([]entity.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}

func (s *staticPages) Get(slug string) *entity.Page {
	p, ok := s.pages[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func predictionPage(models []entity.ModelID) *entity.Page {
	names := make([]string, 0, len(models))
	for _, id := range models {
		names = append(names, id.DisplayName())
	}
	return &entity.Page{
		Slug:  SlugPrediction,
		Title: "Prediction",
		Icon:  "search",
		Sections: []entity.PageSection{
			{
				Heading: "Prediction with ML Models",
				Body: "Enter a tweet and select a classifier. The text is vectorized with the " +
					"shared vectorizer and classified into one of the climate change stances.",
				Bullets: names,
			},
		},
	}
}

func informationPage() *entity.Page {
	return &entity.Page{
		Slug:  SlugInformation,
		Title: "Information",
		Icon:  "info-circle",
		Sections: []entity.PageSection{
			{
				Heading: "General Information",
				Body: "The goal of this project is to develop a machine learning model that can rank " +
					"whether or not someone believes in climate change based on new Twitter data. " +
					"An accurate and robust solution gives companies access to a large pool of " +
					"customer views across many demographic and geographic groups, enabling new " +
					"insights that better inform future marketing initiatives.",
			},
			{
				Heading: "Raw Twitter data and label",
				Body:    "The labelled training tweets are available from the dataset samples endpoint.",
			},
		},
	}
}

func visualisationsPage() *entity.Page {
	return &entity.Page{
		Slug:  SlugVisualisations,
		Title: "Visualisations",
		Icon:  "bar-chart-line",
		Sections: []entity.PageSection{
			{
				Heading: "Tweets per sentiment",
				Body:    "Per-category counts are served by the dataset distribution endpoint.",
				Bullets: []string{
					"There is a strong imbalance amongst the sentiments of the tweets.",
					"The vast majority of tweets support the belief in man-made climate change.",
					"Only a small share of tweets do not support the belief in man-made climate change.",
				},
			},
			{
				Heading: "Percentage of tweets per sentiment",
				Bullets: []string{
					"The Prominent sentiment dominates the data with roughly 54% of tweets.",
					"The Anthropogenic sentiment contributes roughly 8%.",
				},
			},
		},
	}
}

func contactPage(formAction string) *entity.Page {
	page := &entity.Page{
		Slug:  SlugContact,
		Title: "Get in touch with us!",
		Icon:  "envelope",
		Sections: []entity.PageSection{
			{
				Heading: "About Us",
				Body: "We are Explore Tech SA, an organization based in Southern Africa with a passion " +
					"for solving problems using the unique skill set of our team. We are insights-driven " +
					"and outcome-based, helping accelerate returns on IT and business investments.",
			},
		},
	}
	if formAction != "" {
		page.Form = &entity.ContactForm{
			Action: formAction,
			Method: "POST",
			Fields: []entity.FormField{
				{Name: "name", Type: "text", Placeholder: "Your name", Required: true},
				{Name: "email", Type: "email", Placeholder: "Your email", Required: true},
				{Name: "message", Type: "textarea", Placeholder: "Your message here", Required: true},
			},
		}
	}
	return page
}
