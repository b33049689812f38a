package components

import (
	"html/template"
)

const IconCircleCheck = "circle-check"

var icons = map[string]string{
	IconCircleCheck: `<svg class="icon icon-circle-check" aria-hidden="true" focusable="false" viewBox="0 0 24 24" width="1em" height="1em"><circle cx="12" cy="12" r="11" fill="currentColor"/><path d="M7 12.5l3.2 3.2L17 9" fill="none" stroke="#fff" stroke-width="2.2" stroke-linecap="round" stroke-linejoin="round"/></svg>`,
}

// Icon returns the inline SVG glyph registered under name, or an empty string.
func Icon(name string) template.HTML {
	return template.HTML(icons[name])
}
