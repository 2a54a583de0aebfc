package content

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xcoinlabs/xcoin/internal/annotate"
	"github.com/xcoinlabs/xcoin/internal/chart"
)

type Site struct {
	Version int       `yaml:"version" json:"version"`
	Name    string    `yaml:"name" json:"name"`
	BaseURL string    `yaml:"base_url" json:"base_url"`
	Tagline string    `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	Nav     []NavItem `yaml:"nav,omitempty" json:"nav,omitempty"`
	Footer  Footer    `yaml:"footer,omitempty" json:"footer,omitempty"`
	Robots  Robots    `yaml:"robots,omitempty" json:"robots,omitempty"`
}

type NavItem struct {
	Label string `yaml:"label" json:"label"`
	Path  string `yaml:"path" json:"path"`
}

type Footer struct {
	Text  string    `yaml:"text,omitempty" json:"text,omitempty"`
	Links []NavItem `yaml:"links,omitempty" json:"links,omitempty"`
}

type Robots struct {
	Disallow []string `yaml:"disallow,omitempty" json:"disallow,omitempty"`
}

type Page struct {
	Slug         string             `yaml:"slug" json:"slug"`
	Title        string             `yaml:"title" json:"title"`
	Description  string             `yaml:"description,omitempty" json:"description,omitempty"`
	Order        int                `yaml:"order,omitempty" json:"order,omitempty"`
	Hero         *Hero              `yaml:"hero,omitempty" json:"hero,omitempty"`
	Sections     []Section          `yaml:"sections,omitempty" json:"sections,omitempty"`
	FAQ          []FAQItem          `yaml:"faq,omitempty" json:"faq,omitempty"`
	Comparison   *Table             `yaml:"comparison,omitempty" json:"comparison,omitempty"`
	Allocations  []chart.Allocation `yaml:"allocations,omitempty" json:"allocations,omitempty"`
	Crowdfunding *Crowdfunding      `yaml:"crowdfunding,omitempty" json:"crowdfunding,omitempty"`
	Testimonials []Testimonial      `yaml:"testimonials,omitempty" json:"testimonials,omitempty"`
	Roadmap      []Milestone        `yaml:"roadmap,omitempty" json:"roadmap,omitempty"`
	Waitlist     bool               `yaml:"waitlist,omitempty" json:"waitlist,omitempty"`
}

type Hero struct {
	Heading    string `yaml:"heading" json:"heading"`
	Subheading string `yaml:"subheading,omitempty" json:"subheading,omitempty"`
	CTALabel   string `yaml:"cta_label,omitempty" json:"cta_label,omitempty"`
	CTAPath    string `yaml:"cta_path,omitempty" json:"cta_path,omitempty"`
}

// Section is a block of page copy. Body is markdown; Text is plain copy
// that gets its Links annotated.
type Section struct {
	Heading string         `yaml:"heading,omitempty" json:"heading,omitempty"`
	Body    string         `yaml:"body,omitempty" json:"body,omitempty"`
	Text    string         `yaml:"text,omitempty" json:"text,omitempty"`
	Links   annotate.Links `yaml:"links,omitempty" json:"links,omitempty"`
}

type FAQItem struct {
	Question string         `yaml:"question" json:"question"`
	Answer   string         `yaml:"answer" json:"answer"`
	Links    annotate.Links `yaml:"links,omitempty" json:"links,omitempty"`
}

type Table struct {
	Columns []string   `yaml:"columns" json:"columns"`
	Rows    []TableRow `yaml:"rows" json:"rows"`
}

type TableRow struct {
	Feature string   `yaml:"feature" json:"feature"`
	Values  []string `yaml:"values" json:"values"`
}

type Crowdfunding struct {
	RaisedUSD int64  `yaml:"raised_usd" json:"raised_usd"`
	GoalUSD   int64  `yaml:"goal_usd" json:"goal_usd"`
	Backers   int    `yaml:"backers,omitempty" json:"backers,omitempty"`
	Tiers     []Tier `yaml:"tiers,omitempty" json:"tiers,omitempty"`
}

// Progress returns the raised share of the goal in percent, capped at 100.
func (c Crowdfunding) Progress() float64 {
	if c.GoalUSD <= 0 || c.RaisedUSD <= 0 {
		return 0
	}
	p := float64(c.RaisedUSD) * 100 / float64(c.GoalUSD)
	if p > 100 {
		return 100
	}
	return p
}

type Tier struct {
	Name     string   `yaml:"name" json:"name"`
	MinUSD   int64    `yaml:"min_usd" json:"min_usd"`
	Perks    []string `yaml:"perks,omitempty" json:"perks,omitempty"`
	Featured bool     `yaml:"featured,omitempty" json:"featured,omitempty"`
}

type Testimonial struct {
	Author string `yaml:"author" json:"author"`
	Role   string `yaml:"role,omitempty" json:"role,omitempty"`
	Quote  string `yaml:"quote" json:"quote"`
}

type Milestone struct {
	Quarter string `yaml:"quarter" json:"quarter"`
	Title   string `yaml:"title" json:"title"`
	Done    bool   `yaml:"done,omitempty" json:"done,omitempty"`
}

// Path is the site path the page is served under.
func (p Page) Path() string {
	return "/" + p.Slug
}

func ParseSite(data []byte, source string) (Site, error) {
	var site Site
	if err := decodeStrict(data, &site); err != nil {
		return site, fmt.Errorf("parse YAML in %q: %w", source, err)
	}
	if errs := site.Validate(); len(errs) > 0 {
		return site, fmt.Errorf("invalid site in %q: %s", source, strings.Join(errs, "; "))
	}
	return site, nil
}

func ParsePage(data []byte, source string) (Page, error) {
	var page Page
	if err := decodeStrict(data, &page); err != nil {
		return page, fmt.Errorf("parse YAML in %q: %w", source, err)
	}
	if errs := page.Validate(); len(errs) > 0 {
		return page, fmt.Errorf("invalid page in %q: %s", source, strings.Join(errs, "; "))
	}
	return page, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func (s Site) Validate() []string {
	var errs []string
	if s.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported site version %d", s.Version))
	}
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if base := strings.TrimSpace(s.BaseURL); base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		errs = append(errs, "base_url must start with http:// or https://")
	}
	for i, item := range s.Nav {
		if strings.TrimSpace(item.Label) == "" || strings.TrimSpace(item.Path) == "" {
			errs = append(errs, fmt.Sprintf("nav[%d] requires label and path", i))
		}
	}
	for i, item := range s.Footer.Links {
		if strings.TrimSpace(item.Label) == "" || strings.TrimSpace(item.Path) == "" {
			errs = append(errs, fmt.Sprintf("footer.links[%d] requires label and path", i))
		}
	}
	for i, p := range s.Robots.Disallow {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Sprintf("robots.disallow[%d] must start with /", i))
		}
	}
	return errs
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]*$`)

func (p Page) Validate() []string {
	var errs []string
	if !slugPattern.MatchString(p.Slug) {
		errs = append(errs, fmt.Sprintf("slug %q must match [a-z0-9-]", p.Slug))
	}
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "title is required")
	}
	if p.Hero != nil && strings.TrimSpace(p.Hero.Heading) == "" {
		errs = append(errs, "hero.heading is required when hero is set")
	}
	for i, sec := range p.Sections {
		if strings.TrimSpace(sec.Body) == "" && strings.TrimSpace(sec.Text) == "" {
			errs = append(errs, fmt.Sprintf("sections[%d] requires body or text", i))
		}
		errs = append(errs, validateLinks(fmt.Sprintf("sections[%d].links", i), sec.Links)...)
	}
	for i, item := range p.FAQ {
		if strings.TrimSpace(item.Question) == "" || strings.TrimSpace(item.Answer) == "" {
			errs = append(errs, fmt.Sprintf("faq[%d] requires question and answer", i))
		}
		errs = append(errs, validateLinks(fmt.Sprintf("faq[%d].links", i), item.Links)...)
	}
	if p.Comparison != nil {
		if len(p.Comparison.Columns) == 0 {
			errs = append(errs, "comparison.columns is required")
		}
		for i, row := range p.Comparison.Rows {
			if len(row.Values) != len(p.Comparison.Columns) {
				errs = append(errs, fmt.Sprintf("comparison.rows[%d] has %d values, want %d", i, len(row.Values), len(p.Comparison.Columns)))
			}
		}
	}
	if len(p.Allocations) > 0 {
		if err := chart.Validate(p.Allocations); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if p.Crowdfunding != nil {
		if p.Crowdfunding.GoalUSD <= 0 {
			errs = append(errs, "crowdfunding.goal_usd must be positive")
		}
		if p.Crowdfunding.RaisedUSD < 0 {
			errs = append(errs, "crowdfunding.raised_usd must not be negative")
		}
		for i, tier := range p.Crowdfunding.Tiers {
			if strings.TrimSpace(tier.Name) == "" {
				errs = append(errs, fmt.Sprintf("crowdfunding.tiers[%d].name is required", i))
			}
		}
	}
	for i, tm := range p.Testimonials {
		if strings.TrimSpace(tm.Author) == "" || strings.TrimSpace(tm.Quote) == "" {
			errs = append(errs, fmt.Sprintf("testimonials[%d] requires author and quote", i))
		}
	}
	for i, m := range p.Roadmap {
		if strings.TrimSpace(m.Quarter) == "" || strings.TrimSpace(m.Title) == "" {
			errs = append(errs, fmt.Sprintf("roadmap[%d] requires quarter and title", i))
		}
	}
	return errs
}

func validateLinks(field string, links annotate.Links) []string {
	anchors := make([]string, 0, len(links))
	for anchor := range links {
		anchors = append(anchors, anchor)
	}
	sort.Strings(anchors)

	var errs []string
	for _, anchor := range anchors {
		target := links[anchor]
		if anchor == "" {
			errs = append(errs, field+" has an empty anchor")
			continue
		}
		if strings.TrimSpace(target) == "" {
			errs = append(errs, fmt.Sprintf("%s[%q] target is required", field, anchor))
		}
	}
	return errs
}
