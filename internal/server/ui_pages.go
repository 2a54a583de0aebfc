package server

import (
	"fmt"
	"html/template"
)

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("site").Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}
	if _, err := tmpl.Parse(pageHTML); err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	if _, err := tmpl.Parse(notFoundHTML); err != nil {
		return nil, fmt.Errorf("parse not found template: %w", err)
	}
	return tmpl, nil
}

const layoutHTML = `{{define "header"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  {{with .Description}}<meta name="description" content="{{.}}" />{{end}}
  {{with .Canonical}}<link rel="canonical" href="{{.}}" />{{end}}
  <link rel="stylesheet" href="/assets/site.css" />
</head>
<body>
  <header class="site-header">
    <a class="brand" href="/">{{.SiteName}}</a>
    <nav>
      {{range .Nav}}<a href="{{.Path}}"{{if .Active}} class="active" aria-current="page"{{end}}{{if .External}} target="_blank" rel="noopener noreferrer"{{end}}>{{.Label}}</a>
      {{end}}
    </nav>
  </header>
  <main>
{{end}}

{{define "footer"}}
  </main>
  <footer class="site-footer">
    {{with .FooterText}}<p>{{.}}</p>{{end}}
    <nav>
      {{range .FooterLinks}}<a href="{{.Path}}"{{if .External}} target="_blank" rel="noopener noreferrer"{{end}}>{{.Label}}</a>
      {{end}}
    </nav>
    <p class="copyright">&copy; {{.Year}} {{.SiteName}}</p>
  </footer>
  <script src="/assets/site.js" defer></script>
</body>
</html>
{{end}}`

const pageHTML = `{{define "page"}}{{template "header" .}}
{{with .Hero}}
  <section class="hero">
    <h1>{{.Heading}}</h1>
    {{with .Subheading}}<p class="lead">{{.}}</p>{{end}}
    {{if .CTAPath}}<a class="cta" href="{{.CTAPath}}">{{.CTALabel}}</a>{{end}}
  </section>
{{end}}

{{range .Sections}}
  <section class="content-section">
    {{with .Heading}}<h2>{{.}}</h2>{{end}}
    {{.HTML}}
  </section>
{{end}}

{{if .ChartSVG}}
  <section class="tokenomics">
    <div class="donut" data-src="{{.ChartPath}}">{{.ChartSVG}}</div>
    <ul class="legend">
      {{range .Allocations}}<li><span class="swatch" style="background: {{.Color}}"></span>{{.Label}} <strong>{{.Percent}}</strong></li>
      {{end}}
    </ul>
  </section>
{{end}}

{{with .Crowdfunding}}
  <section class="crowdfunding">
    <div class="progress" role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="{{.Progress}}">
      <div class="progress-bar" style="width: {{.Progress}}%"></div>
    </div>
    <p class="raised"><strong>{{.Raised}}</strong> raised of {{.Goal}} goal &middot; {{.Backers}} backers</p>
    <div class="tiers">
      {{range .Tiers}}<article class="tier{{if .Featured}} featured{{end}}">
        <h3>{{.Name}}</h3>
        <p class="tier-min">from {{.Min}}</p>
        <ul>{{range .Perks}}<li>{{.}}</li>{{end}}</ul>
      </article>
      {{end}}
    </div>
  </section>
{{end}}

{{with .Comparison}}
  <section class="comparison">
    <table>
      <thead><tr><th>Feature</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>
        {{range .Rows}}<tr><th scope="row">{{.Feature}}</th>{{range .Values}}<td>{{.}}</td>{{end}}</tr>
        {{end}}
      </tbody>
    </table>
  </section>
{{end}}

{{if .FAQSearch}}
  <section class="faq">
    <form class="faq-search" method="get">
      <input type="search" name="q" value="{{.FAQQuery}}" placeholder="Search questions" aria-label="Search questions" />
    </form>
    {{range .FAQ}}<details class="faq-item" id="{{.ID}}">
      <summary>{{.Question}}</summary>
      <p>{{.Answer}}</p>
    </details>
    {{else}}<p class="faq-empty">No questions match &ldquo;{{.FAQQuery}}&rdquo;.</p>
    {{end}}
  </section>
{{end}}

{{with .Testimonials}}
  <section class="testimonials">
    <div class="carousel" tabindex="0">
      {{range .}}<figure class="testimonial">
        <blockquote>{{.Quote}}</blockquote>
        <figcaption>{{.Author}}{{with .Role}}, <span>{{.}}</span>{{end}}</figcaption>
      </figure>
      {{end}}
    </div>
  </section>
{{end}}

{{with .Roadmap}}
  <section class="roadmap">
    <ol>
      {{range .}}<li class="{{if .Done}}done{{else}}upcoming{{end}}"><span class="quarter">{{.Quarter}}</span> {{.Title}}</li>
      {{end}}
    </ol>
  </section>
{{end}}

{{if .Waitlist}}
  <section class="waitlist" id="waitlist">
    <h2>Join the waitlist</h2>
    <form class="waitlist-form" data-endpoint="/api/waitlist">
      <input type="email" name="email" required placeholder="you@example.com" aria-label="Email address" />
      <button type="submit">Notify me</button>
      <p class="waitlist-status" role="status"></p>
    </form>
  </section>
{{end}}
{{template "footer" .}}{{end}}`

const notFoundHTML = `{{define "notfound"}}{{template "header" .}}
  <section class="hero">
    <h1>Page not found</h1>
    <p class="lead">The page you are looking for does not exist.</p>
    <a class="cta" href="/">Back to home</a>
  </section>
{{template "footer" .}}{{end}}`
