package snippet

// Catalogue returns the fixed built-in snippets. The slice is rebuilt on
// each call so callers can never mutate the catalogue.
func Catalogue() []Snippet {
	return []Snippet{
		{
			ID:          "scaffold-page",
			Label:       "Page scaffold",
			Kind:        KindAll,
			Description: "Heading, paragraph and a button to start from",
			Tags:        []string{"starter", "page"},
			Body:        "<div class=\"page\">\n  <h1>Title</h1>\n  <p>Hello!</p>\n  <button id=\"go\">Go</button>\n</div>\n",
		},
		{
			ID:          "heading",
			Label:       "Heading",
			Kind:        KindMarkup,
			Description: "Top-level heading",
			Tags:        []string{"text"},
			Body:        "<h1>Title</h1>\n",
		},
		{
			ID:          "paragraph",
			Label:       "Paragraph",
			Kind:        KindMarkup,
			Description: "Plain text block",
			Tags:        []string{"text"},
			Body:        "<p>Some text.</p>\n",
		},
		{
			ID:          "image",
			Label:       "Image",
			Kind:        KindMarkup,
			Description: "Picture with alternative text",
			Tags:        []string{"media"},
			Body:        "<img src=\"photo.png\" alt=\"A photo\" />\n",
		},
		{
			ID:          "button",
			Label:       "Button",
			Kind:        KindMarkup,
			Description: "Clickable button",
			Tags:        []string{"form", "click"},
			Body:        "<button id=\"action\">Click me</button>\n",
		},
		{
			ID:          "list",
			Label:       "List",
			Kind:        KindMarkup,
			Description: "Bulleted list with three items",
			Tags:        []string{"text"},
			Body:        "<ul>\n  <li>One</li>\n  <li>Two</li>\n  <li>Three</li>\n</ul>\n",
		},
		{
			ID:          "flex-row",
			Label:       "Flex row center",
			Kind:        KindStyle,
			Description: "Row layout with centered items",
			Tags:        []string{"layout", "flex"},
			Body:        ".row {\n  display: flex;\n  align-items: center;\n  justify-content: center;\n  gap: 8px;\n}\n",
		},
		{
			ID:          "card-style",
			Label:       "Card",
			Kind:        KindStyle,
			Description: "Rounded box with a soft shadow",
			Tags:        []string{"layout"},
			Body:        ".card {\n  padding: 16px;\n  border-radius: 8px;\n  box-shadow: 0 2px 8px rgba(0, 0, 0, 0.15);\n}\n",
		},
		{
			ID:          "color-theme",
			Label:       "Color theme",
			Kind:        KindStyle,
			Description: "Background and text colors for the page",
			Tags:        []string{"color"},
			Body:        "body {\n  background: #f7f7f7;\n  color: #222;\n  font-family: sans-serif;\n}\n",
		},
		{
			ID:          "click-handler",
			Label:       "Click handler",
			Kind:        KindScript,
			Description: "React to a button press",
			Tags:        []string{"event", "click"},
			Body:        "document.getElementById('action').addEventListener('click', () => {\n  console.log('clicked');\n});\n",
		},
		{
			ID:          "timer",
			Label:       "Repeating timer",
			Kind:        KindScript,
			Description: "Run code once a second",
			Tags:        []string{"time"},
			Body:        "setInterval(() => {\n  console.log('tick');\n}, 1000);\n",
		},
		{
			ID:          "fetch-json",
			Label:       "Fetch JSON",
			Kind:        KindScript,
			Description: "Load data from a URL",
			Tags:        []string{"network"},
			Body:        "fetch('https://example.com/data.json')\n  .then((res) => res.json())\n  .then((data) => console.log(data));\n",
		},
	}
}
