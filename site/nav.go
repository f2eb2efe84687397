package site

// Navigation backgrounds.
const (
	BackgroundTransparent = "transparent"
	BackgroundBlue        = "blue"
)

// NavLink is a top-level or dropdown navigation entry.
type NavLink struct {
	Label    string
	Href     string
	External bool
	Children []NavLink
}

// Nav is the site header.
type Nav struct {
	Background string
	Links      []NavLink
	CTA        NavLink
}

// DefaultAppURL is where the "Open App" button points.
const DefaultAppURL = "https://app.nexusmutual.io/cover"

// NewNav builds the header with the given background. An unknown
// background is treated as transparent.
func NewNav(background, appURL string) Nav {
	if background != BackgroundBlue {
		background = BackgroundTransparent
	}
	if appURL == "" {
		appURL = DefaultAppURL
	}
	return Nav{
		Background: background,
		Links: []NavLink{
			{Label: "Products", Href: "/cover-products/"},
			{Label: "Claims", Href: "/claims/"},
			{Label: "Learn", Children: []NavLink{
				{Label: "Docs", Href: "https://docs.nexusmutual.io/", External: true},
				{Label: "Developers", Href: "https://github.com/NexusMutual", External: true},
			}},
			{Label: "Blog", Href: "/blog/"},
			{Label: "Contact us", Href: "/contact/"},
		},
		CTA: NavLink{Label: "Open App", Href: appURL, External: true},
	}
}

// Class returns the positioning classes for the header.
func (n Nav) Class() string {
	if n.Background == BackgroundBlue {
		return "relative bg-nexus-dark"
	}
	return "absolute top-0 left-0 right-0 z-50 bg-transparent"
}
