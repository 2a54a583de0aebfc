package server

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/ncruces/go-strftime"
	"github.com/yuin/goldmark"

	"github.com/xcoinlabs/xcoin/internal/annotate"
	"github.com/xcoinlabs/xcoin/internal/chart"
	"github.com/xcoinlabs/xcoin/internal/content"
)

const inlineLinkClass = "inline-link"

type navLink struct {
	Label    string
	Path     string
	Active   bool
	External bool
}

type sectionView struct {
	Heading string
	HTML    template.HTML
}

type faqView struct {
	ID       string
	Question string
	Answer   template.HTML
}

type allocationView struct {
	Label   string
	Color   string
	Percent string
}

type tierView struct {
	Name     string
	Min      string
	Perks    []string
	Featured bool
}

type crowdfundingView struct {
	Raised   string
	Goal     string
	Backers  string
	Progress string
	Tiers    []tierView
}

type pageView struct {
	SiteName     string
	Tagline      string
	Title        string
	Description  string
	Canonical    string
	Nav          []navLink
	FooterText   string
	FooterLinks  []navLink
	Year         string
	Hero         *content.Hero
	Sections     []sectionView
	FAQ          []faqView
	FAQQuery     string
	FAQSearch    bool
	Comparison   *content.Table
	ChartSVG     template.HTML
	ChartPath    string
	Allocations  []allocationView
	Crowdfunding *crowdfundingView
	Testimonials []content.Testimonial
	Roadmap      []content.Milestone
	Waitlist     bool
}

var markdown = goldmark.New()

func (s *Server) buildPageView(p content.Page, faqQuery string) (pageView, error) {
	site := s.site.Site
	v := pageView{
		SiteName:     site.Name,
		Tagline:      site.Tagline,
		Title:        pageTitle(site, p),
		Description:  p.Description,
		Canonical:    absoluteURL(site.BaseURL, p.Path()),
		Nav:          navLinks(site.Nav, p.Path()),
		FooterText:   site.Footer.Text,
		FooterLinks:  navLinks(site.Footer.Links, p.Path()),
		Year:         strftime.Format("%Y", s.now()),
		Hero:         p.Hero,
		Comparison:   p.Comparison,
		Testimonials: p.Testimonials,
		Roadmap:      p.Roadmap,
		Waitlist:     p.Waitlist,
		FAQSearch:    len(p.FAQ) > 0,
		FAQQuery:     faqQuery,
	}

	for i, sec := range p.Sections {
		html, err := renderSection(sec)
		if err != nil {
			return pageView{}, fmt.Errorf("render %s section %d: %w", p.Path(), i, err)
		}
		v.Sections = append(v.Sections, sectionView{Heading: sec.Heading, HTML: html})
	}

	for _, i := range filterFAQ(p.FAQ, faqQuery) {
		item := p.FAQ[i]
		answer, err := annotate.HTML(item.Answer, item.Links, annotate.RenderOptions{LinkClass: inlineLinkClass})
		if err != nil {
			return pageView{}, fmt.Errorf("render %s faq %d: %w", p.Path(), i, err)
		}
		v.FAQ = append(v.FAQ, faqView{
			ID:       "faq-" + strconv.Itoa(i+1),
			Question: item.Question,
			Answer:   template.HTML(answer),
		})
	}

	if len(p.Allocations) > 0 {
		var b strings.Builder
		if err := chart.RenderSVG(&b, p.Allocations, chart.SVGOptions{Title: p.Title}); err != nil {
			return pageView{}, err
		}
		v.ChartSVG = template.HTML(b.String())
		v.ChartPath = strings.TrimSuffix(p.Path(), "/") + "/chart.svg"
		for _, a := range p.Allocations {
			v.Allocations = append(v.Allocations, allocationView{
				Label:   a.Label,
				Color:   a.Color,
				Percent: humanize.FtoaWithDigits(a.Percentage, 2) + "%",
			})
		}
	}

	if cf := p.Crowdfunding; cf != nil {
		view := &crowdfundingView{
			Raised:   "$" + humanize.Comma(cf.RaisedUSD),
			Goal:     "$" + humanize.Comma(cf.GoalUSD),
			Backers:  humanize.Comma(int64(cf.Backers)),
			Progress: humanize.FtoaWithDigits(cf.Progress(), 1),
		}
		for _, tier := range cf.Tiers {
			view.Tiers = append(view.Tiers, tierView{
				Name:     tier.Name,
				Min:      "$" + humanize.Comma(tier.MinUSD),
				Perks:    tier.Perks,
				Featured: tier.Featured,
			})
		}
		v.Crowdfunding = view
	}

	return v, nil
}

func renderSection(sec content.Section) (template.HTML, error) {
	var b bytes.Buffer
	if strings.TrimSpace(sec.Body) != "" {
		if err := markdown.Convert([]byte(sec.Body), &b); err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
	}
	if strings.TrimSpace(sec.Text) != "" {
		b.WriteString("<p>")
		if err := annotate.RenderHTML(&b, annotate.Annotate(sec.Text, sec.Links), annotate.RenderOptions{LinkClass: inlineLinkClass}); err != nil {
			return "", err
		}
		b.WriteString("</p>\n")
	}
	return template.HTML(b.String()), nil
}

// filterFAQ returns the indexes of the items whose question or answer
// fuzzily contains query. An empty query keeps everything.
func filterFAQ(items []content.FAQItem, query string) []int {
	query = strings.TrimSpace(query)
	out := make([]int, 0, len(items))
	for i, item := range items {
		if query == "" || fuzzy.MatchNormalizedFold(query, item.Question) || fuzzy.MatchNormalizedFold(query, item.Answer) {
			out = append(out, i)
		}
	}
	return out
}

func pageTitle(site content.Site, p content.Page) string {
	if p.Slug == "" || strings.Contains(p.Title, site.Name) {
		return p.Title
	}
	return p.Title + " | " + site.Name
}

func navLinks(items []content.NavItem, current string) []navLink {
	out := make([]navLink, 0, len(items))
	for _, item := range items {
		out = append(out, navLink{
			Label:    item.Label,
			Path:     item.Path,
			Active:   item.Path == current,
			External: annotate.IsExternal(item.Path),
		})
	}
	return out
}

func absoluteURL(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return path
	}
	return base + path
}
