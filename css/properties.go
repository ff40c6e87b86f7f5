// Copyright © 2025 The cssls authors

package css

import "sort"

// Property describes a known CSS property: its documentation, a syntax
// summary, and keyword values offered by completion where the value
// grammar is keyword-shaped.
type Property struct {
	Name   string
	Doc    string
	Syntax string
	Values []string
}

// LookupProperty returns the data entry for a property name, if known.
func LookupProperty(name string) (Property, bool) {
	p, ok := properties[name]
	return p, ok
}

// KnownProperty reports whether the property name is in the data table.
func KnownProperty(name string) bool {
	_, ok := properties[name]
	return ok
}

// PropertyNames returns all known property names, sorted.
func PropertyNames() []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClosestProperty returns the known property with the smallest edit
// distance to name, when that distance is small enough to suggest a
// typo (at most 2, or 3 for names longer than 8 characters).
func ClosestProperty(name string) (string, bool) {
	limit := 2
	if len(name) > 8 {
		limit = 3
	}
	best := ""
	bestDist := limit + 1
	for _, candidate := range PropertyNames() {
		d := editDistance(name, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best, best != ""
}

// editDistance is the Levenshtein distance between two short names.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

var colorValues = []string{
	"transparent", "currentColor", "black", "white", "red", "green",
	"blue", "yellow", "orange", "purple", "gray", "inherit",
}

var properties = map[string]Property{
	"align-items": {
		Name:   "align-items",
		Doc:    "Aligns flex or grid items along the cross axis of the container.",
		Syntax: "normal | stretch | center | start | end | flex-start | flex-end | baseline",
		Values: []string{"normal", "stretch", "center", "start", "end", "flex-start", "flex-end", "baseline"},
	},
	"align-content": {
		Name:   "align-content",
		Doc:    "Distributes space between and around content items along the cross axis.",
		Syntax: "normal | center | start | end | space-between | space-around | space-evenly | stretch",
		Values: []string{"normal", "center", "start", "end", "space-between", "space-around", "space-evenly", "stretch"},
	},
	"animation": {
		Name:   "animation",
		Doc:    "Shorthand for the animation-* properties.",
		Syntax: "<single-animation>#",
	},
	"background": {
		Name:   "background",
		Doc:    "Shorthand for setting all background style properties at once.",
		Syntax: "<bg-layer># , <final-bg-layer>",
	},
	"background-color": {
		Name:   "background-color",
		Doc:    "Sets the background color of an element.",
		Syntax: "<color>",
		Values: colorValues,
	},
	"background-image": {
		Name:   "background-image",
		Doc:    "Sets one or more background images for an element.",
		Syntax: "<bg-image>#",
		Values: []string{"none"},
	},
	"background-position": {
		Name:   "background-position",
		Doc:    "Sets the initial position of each background image.",
		Syntax: "<bg-position>#",
		Values: []string{"top", "bottom", "left", "right", "center"},
	},
	"background-repeat": {
		Name:   "background-repeat",
		Doc:    "Defines how background images are repeated.",
		Syntax: "<repeat-style>#",
		Values: []string{"repeat", "repeat-x", "repeat-y", "no-repeat", "space", "round"},
	},
	"background-size": {
		Name:   "background-size",
		Doc:    "Specifies the size of the background images.",
		Syntax: "<bg-size>#",
		Values: []string{"auto", "cover", "contain"},
	},
	"border": {
		Name:   "border",
		Doc:    "Shorthand for border-width, border-style, and border-color.",
		Syntax: "<line-width> || <line-style> || <color>",
	},
	"border-color": {
		Name:   "border-color",
		Doc:    "Sets the color of the element's four borders.",
		Syntax: "<color>{1,4}",
		Values: colorValues,
	},
	"border-radius": {
		Name:   "border-radius",
		Doc:    "Rounds the corners of an element's outer border edge.",
		Syntax: "<length-percentage>{1,4} [ / <length-percentage>{1,4} ]?",
	},
	"border-style": {
		Name:   "border-style",
		Doc:    "Sets the line style of the element's four borders.",
		Syntax: "<line-style>{1,4}",
		Values: []string{"none", "hidden", "dotted", "dashed", "solid", "double", "groove", "ridge", "inset", "outset"},
	},
	"border-width": {
		Name:   "border-width",
		Doc:    "Sets the width of the element's four borders.",
		Syntax: "<line-width>{1,4}",
		Values: []string{"thin", "medium", "thick"},
	},
	"bottom": {
		Name:   "bottom",
		Doc:    "Participates in setting the vertical position of a positioned element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"box-shadow": {
		Name:   "box-shadow",
		Doc:    "Attaches one or more shadows to an element's frame.",
		Syntax: "none | <shadow>#",
		Values: []string{"none"},
	},
	"box-sizing": {
		Name:   "box-sizing",
		Doc:    "Defines how the total width and height of an element are calculated.",
		Syntax: "content-box | border-box",
		Values: []string{"content-box", "border-box"},
	},
	"clear": {
		Name:   "clear",
		Doc:    "Sets whether an element must be moved below preceding floated elements.",
		Syntax: "none | left | right | both | inline-start | inline-end",
		Values: []string{"none", "left", "right", "both", "inline-start", "inline-end"},
	},
	"color": {
		Name:   "color",
		Doc:    "Sets the foreground color of an element's text and text decorations.",
		Syntax: "<color>",
		Values: colorValues,
	},
	"content": {
		Name:   "content",
		Doc:    "Replaces an element's content with a generated value; used with ::before and ::after.",
		Syntax: "normal | none | [ <content-replacement> | <content-list> ]",
		Values: []string{"normal", "none"},
	},
	"cursor": {
		Name:   "cursor",
		Doc:    "Sets the mouse cursor to display when hovering over an element.",
		Syntax: "[ <url> , ]* <cursor-keyword>",
		Values: []string{"auto", "default", "pointer", "wait", "text", "move", "not-allowed", "grab", "crosshair"},
	},
	"display": {
		Name:   "display",
		Doc:    "Sets whether an element is treated as a block or inline box and the layout of its children.",
		Syntax: "[ <display-outside> || <display-inside> ] | <display-listitem> | <display-internal> | <display-box> | <display-legacy>",
		Values: []string{"block", "inline", "inline-block", "flex", "inline-flex", "grid", "inline-grid", "flow-root", "none", "contents", "table", "list-item"},
	},
	"flex": {
		Name:   "flex",
		Doc:    "Shorthand for flex-grow, flex-shrink, and flex-basis.",
		Syntax: "none | [ <flex-grow> <flex-shrink>? || <flex-basis> ]",
		Values: []string{"none", "auto", "initial"},
	},
	"flex-direction": {
		Name:   "flex-direction",
		Doc:    "Sets how flex items are placed in the flex container, defining the main axis.",
		Syntax: "row | row-reverse | column | column-reverse",
		Values: []string{"row", "row-reverse", "column", "column-reverse"},
	},
	"flex-wrap": {
		Name:   "flex-wrap",
		Doc:    "Sets whether flex items are forced onto one line or can wrap.",
		Syntax: "nowrap | wrap | wrap-reverse",
		Values: []string{"nowrap", "wrap", "wrap-reverse"},
	},
	"float": {
		Name:   "float",
		Doc:    "Places an element on the left or right side of its container, allowing text to wrap around it.",
		Syntax: "left | right | none | inline-start | inline-end",
		Values: []string{"left", "right", "none", "inline-start", "inline-end"},
	},
	"font": {
		Name:   "font",
		Doc:    "Shorthand for font-style, font-variant, font-weight, font-size, line-height, and font-family.",
		Syntax: "[ <font-style> || <font-variant> || <font-weight> ]? <font-size> [ / <line-height> ]? <font-family>",
	},
	"font-family": {
		Name:   "font-family",
		Doc:    "Specifies a prioritized list of font family names.",
		Syntax: "[ <family-name> | <generic-family> ]#",
		Values: []string{"serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui"},
	},
	"font-size": {
		Name:   "font-size",
		Doc:    "Sets the size of the font.",
		Syntax: "<absolute-size> | <relative-size> | <length-percentage>",
		Values: []string{"small", "medium", "large", "larger", "smaller"},
	},
	"font-style": {
		Name:   "font-style",
		Doc:    "Sets whether a font is styled normal, italic, or oblique.",
		Syntax: "normal | italic | oblique <angle>?",
		Values: []string{"normal", "italic", "oblique"},
	},
	"font-weight": {
		Name:   "font-weight",
		Doc:    "Sets the weight (boldness) of the font.",
		Syntax: "<font-weight-absolute> | bolder | lighter",
		Values: []string{"normal", "bold", "bolder", "lighter"},
	},
	"gap": {
		Name:   "gap",
		Doc:    "Sets the gutters between rows and columns in flex, grid, and multi-column layout.",
		Syntax: "<row-gap> <column-gap>?",
	},
	"grid-template-columns": {
		Name:   "grid-template-columns",
		Doc:    "Defines the line names and track sizing of grid columns.",
		Syntax: "none | <track-list> | <auto-track-list>",
		Values: []string{"none"},
	},
	"grid-template-rows": {
		Name:   "grid-template-rows",
		Doc:    "Defines the line names and track sizing of grid rows.",
		Syntax: "none | <track-list> | <auto-track-list>",
		Values: []string{"none"},
	},
	"height": {
		Name:   "height",
		Doc:    "Sets an element's height.",
		Syntax: "auto | <length-percentage> | min-content | max-content | fit-content",
		Values: []string{"auto", "min-content", "max-content", "fit-content"},
	},
	"justify-content": {
		Name:   "justify-content",
		Doc:    "Distributes space between and around content items along the main axis.",
		Syntax: "normal | <content-distribution> | <content-position>",
		Values: []string{"normal", "center", "start", "end", "flex-start", "flex-end", "space-between", "space-around", "space-evenly"},
	},
	"left": {
		Name:   "left",
		Doc:    "Participates in setting the horizontal position of a positioned element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"letter-spacing": {
		Name:   "letter-spacing",
		Doc:    "Sets the spacing behavior between text characters.",
		Syntax: "normal | <length>",
		Values: []string{"normal"},
	},
	"line-height": {
		Name:   "line-height",
		Doc:    "Sets the height of a line box, commonly used to set the distance between lines of text.",
		Syntax: "normal | <number> | <length> | <percentage>",
		Values: []string{"normal"},
	},
	"margin": {
		Name:   "margin",
		Doc:    "Shorthand setting the margin area on all four sides of an element.",
		Syntax: "[ <length> | <percentage> | auto ]{1,4}",
		Values: []string{"auto"},
	},
	"margin-bottom": {
		Name:   "margin-bottom",
		Doc:    "Sets the margin area on the bottom of an element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"margin-left": {
		Name:   "margin-left",
		Doc:    "Sets the margin area on the left side of an element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"margin-right": {
		Name:   "margin-right",
		Doc:    "Sets the margin area on the right side of an element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"margin-top": {
		Name:   "margin-top",
		Doc:    "Sets the margin area on the top of an element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"max-height": {
		Name:   "max-height",
		Doc:    "Sets the maximum height of an element.",
		Syntax: "none | <length-percentage> | min-content | max-content | fit-content",
		Values: []string{"none", "min-content", "max-content", "fit-content"},
	},
	"max-width": {
		Name:   "max-width",
		Doc:    "Sets the maximum width of an element.",
		Syntax: "none | <length-percentage> | min-content | max-content | fit-content",
		Values: []string{"none", "min-content", "max-content", "fit-content"},
	},
	"min-height": {
		Name:   "min-height",
		Doc:    "Sets the minimum height of an element.",
		Syntax: "auto | <length-percentage> | min-content | max-content | fit-content",
		Values: []string{"auto", "min-content", "max-content", "fit-content"},
	},
	"min-width": {
		Name:   "min-width",
		Doc:    "Sets the minimum width of an element.",
		Syntax: "auto | <length-percentage> | min-content | max-content | fit-content",
		Values: []string{"auto", "min-content", "max-content", "fit-content"},
	},
	"opacity": {
		Name:   "opacity",
		Doc:    "Sets the opacity of an element between 0 (transparent) and 1 (opaque).",
		Syntax: "<alpha-value>",
	},
	"outline": {
		Name:   "outline",
		Doc:    "Shorthand for outline-color, outline-style, and outline-width.",
		Syntax: "[ <outline-color> || <outline-style> || <outline-width> ]",
		Values: []string{"none"},
	},
	"overflow": {
		Name:   "overflow",
		Doc:    "Sets the desired behavior when content does not fit in the element's box.",
		Syntax: "[ visible | hidden | clip | scroll | auto ]{1,2}",
		Values: []string{"visible", "hidden", "clip", "scroll", "auto"},
	},
	"padding": {
		Name:   "padding",
		Doc:    "Shorthand setting the padding area on all four sides of an element.",
		Syntax: "[ <length> | <percentage> ]{1,4}",
	},
	"padding-bottom": {
		Name:   "padding-bottom",
		Doc:    "Sets the height of the padding area on the bottom of an element.",
		Syntax: "<length> | <percentage>",
	},
	"padding-left": {
		Name:   "padding-left",
		Doc:    "Sets the width of the padding area on the left side of an element.",
		Syntax: "<length> | <percentage>",
	},
	"padding-right": {
		Name:   "padding-right",
		Doc:    "Sets the width of the padding area on the right side of an element.",
		Syntax: "<length> | <percentage>",
	},
	"padding-top": {
		Name:   "padding-top",
		Doc:    "Sets the height of the padding area on the top of an element.",
		Syntax: "<length> | <percentage>",
	},
	"position": {
		Name:   "position",
		Doc:    "Sets how an element is positioned in the document.",
		Syntax: "static | relative | absolute | sticky | fixed",
		Values: []string{"static", "relative", "absolute", "sticky", "fixed"},
	},
	"right": {
		Name:   "right",
		Doc:    "Participates in setting the horizontal position of a positioned element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"text-align": {
		Name:   "text-align",
		Doc:    "Sets the horizontal alignment of the inline-level content inside a block.",
		Syntax: "start | end | left | right | center | justify | match-parent",
		Values: []string{"start", "end", "left", "right", "center", "justify", "match-parent"},
	},
	"text-decoration": {
		Name:   "text-decoration",
		Doc:    "Shorthand for setting the appearance of decorative lines on text.",
		Syntax: "<text-decoration-line> || <text-decoration-style> || <text-decoration-color>",
		Values: []string{"none", "underline", "overline", "line-through"},
	},
	"text-overflow": {
		Name:   "text-overflow",
		Doc:    "Sets how hidden overflow content is signaled to users.",
		Syntax: "[ clip | ellipsis | <string> ]{1,2}",
		Values: []string{"clip", "ellipsis"},
	},
	"text-transform": {
		Name:   "text-transform",
		Doc:    "Specifies how to capitalize an element's text.",
		Syntax: "none | capitalize | uppercase | lowercase | full-width",
		Values: []string{"none", "capitalize", "uppercase", "lowercase", "full-width"},
	},
	"top": {
		Name:   "top",
		Doc:    "Participates in setting the vertical position of a positioned element.",
		Syntax: "<length> | <percentage> | auto",
		Values: []string{"auto"},
	},
	"transform": {
		Name:   "transform",
		Doc:    "Lets you rotate, scale, skew, or translate an element.",
		Syntax: "none | <transform-list>",
		Values: []string{"none"},
	},
	"transition": {
		Name:   "transition",
		Doc:    "Shorthand for the transition-* properties.",
		Syntax: "<single-transition>#",
	},
	"vertical-align": {
		Name:   "vertical-align",
		Doc:    "Sets the vertical alignment of an inline, inline-block, or table-cell box.",
		Syntax: "baseline | sub | super | text-top | text-bottom | middle | top | bottom | <percentage> | <length>",
		Values: []string{"baseline", "sub", "super", "text-top", "text-bottom", "middle", "top", "bottom"},
	},
	"visibility": {
		Name:   "visibility",
		Doc:    "Shows or hides an element without changing the document layout.",
		Syntax: "visible | hidden | collapse",
		Values: []string{"visible", "hidden", "collapse"},
	},
	"white-space": {
		Name:   "white-space",
		Doc:    "Sets how white space inside an element is handled.",
		Syntax: "normal | pre | nowrap | pre-wrap | pre-line | break-spaces",
		Values: []string{"normal", "pre", "nowrap", "pre-wrap", "pre-line", "break-spaces"},
	},
	"width": {
		Name:   "width",
		Doc:    "Sets an element's width.",
		Syntax: "auto | <length-percentage> | min-content | max-content | fit-content",
		Values: []string{"auto", "min-content", "max-content", "fit-content"},
	},
	"word-break": {
		Name:   "word-break",
		Doc:    "Sets whether line breaks appear wherever text would otherwise overflow.",
		Syntax: "normal | break-all | keep-all | break-word",
		Values: []string{"normal", "break-all", "keep-all", "break-word"},
	},
	"z-index": {
		Name:   "z-index",
		Doc:    "Sets the stack order of a positioned element and its descendants.",
		Syntax: "auto | <integer>",
		Values: []string{"auto"},
	},
}
