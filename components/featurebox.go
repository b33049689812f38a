package components

import (
	"html/template"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
)

// FeatureItem is one row of a feature column. Lines are joined with line
// breaks.
type FeatureItem struct {
	Icon  string
	Lines []string
}

func Feature(icon string, lines ...string) FeatureItem {
	return FeatureItem{Icon: icon, Lines: lines}
}

// Box is a pricing box: a header, a titled three column feature grid and a
// call to action.
type Box struct {
	Heading         string
	Intro           []string
	Title           string
	Columns         [3][]FeatureItem
	CallToAction    string
	CallToActionURL string
}

// BusinessCritical is the Hybrid SaaS Business Critical plan.
var BusinessCritical = Box{
	Heading: "Weaviate Cloud Services Hybrid Saas",
	Intro: []string{
		"Our pricing is designed to give you all the capabilities to build and test your applications for free.",
		"When you are ready to move to production, simply pick a plan that best suits your needs.",
	},
	Title: "Business Critical",
	Columns: [3][]FeatureItem{
		{
			Feature(IconCircleCheck, "$0.175 per 1M vector dimensions stored or queried per month"),
			Feature(IconCircleCheck, "AWS, Azure, GCP"),
			Feature(IconCircleCheck, "∞ lifetime (until terminated)"),
		},
		{
			Feature(IconCircleCheck, "Severity 1 - max 1h", "Severity 2 - max 4h", "Severity 3 - max 1bd"),
			Feature(IconCircleCheck, "Monitoring"),
			Feature(IconCircleCheck, "Always on"),
		},
		{
			Feature(IconCircleCheck, "Weaviate Internal Slack or Teams / Email"),
			Feature(IconCircleCheck, "Multi AZ"),
			Feature(IconCircleCheck, "HA optional"),
		},
	},
	CallToAction: "Contact us for more info",
}

const boxTemplate = `<div class="container feature-box">
  <div class="feature-box__header">
    <h2><%= box.Heading %></h2>
    <p><%= lines(box.Intro) %></p>
  </div>
  <div class="feature-box__box">
    <div class="feature-box__title">
      <h3><%= box.Title %></h3>
    </div>
    <div class="feature-box__grid">
<%= for (column) in columns { %>      <ul class="feature-box__features">
<%= for (item) in column { %>        <li><%= icon(item.Icon) %> <span><%= lines(item.Lines) %></span></li>
<% } %>      </ul>
<% } %>    </div>
  </div>
  <div class="feature-box__buttons">
<%= if (box.CallToActionURL != "") { %>    <a class="feature-box__button" href="<%= box.CallToActionURL %>"><%= box.CallToAction %></a>
<% } else { %>    <div class="feature-box__button"><%= box.CallToAction %></div>
<% } %>  </div>
</div>
`

// Render produces the markup of b. The output depends only on b.
func (b Box) Render() (template.HTML, error) {
	ctx := plush.NewContext()
	ctx.Set("box", b)
	ctx.Set("columns", b.Columns[:])
	ctx.Set("icon", Icon)
	ctx.Set("lines", joinLines)

	out, err := plush.Render(boxTemplate, ctx)
	if err != nil {
		return "", errors.Wrap(err, "render feature box")
	}
	return template.HTML(out), nil
}

// FeatureBox renders the Business Critical box.
func FeatureBox() (template.HTML, error) {
	return BusinessCritical.Render()
}

func joinLines(lines []string) template.HTML {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = template.HTMLEscapeString(l)
	}
	return template.HTML(strings.Join(escaped, " <br /> "))
}
