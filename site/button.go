package site

import "strings"

// Button variants.
const (
	ButtonPrimary        = "primary"
	ButtonSecondary      = "secondary"
	ButtonSecondaryWhite = "secondary-white"
)

// Button sizes.
const (
	SizeDefault = "default"
	SizeLarge   = "large"
)

const buttonBase = "font-medium rounded-full transition-all duration-200 focus:outline-none focus:ring-2 focus:ring-offset-2 inline-block text-center"

var buttonSizes = map[string]string{
	SizeDefault: "px-6 py-3 text-base",
	SizeLarge:   "px-8 py-4 text-lg",
}

var buttonVariants = map[string]string{
	ButtonPrimary:        "bg-nexus-yellow text-nexus-dark hover:bg-yellow-500 focus:ring-nexus-yellow",
	ButtonSecondary:      "border-2 border-nexus-dark text-nexus-dark bg-transparent hover:bg-nexus-dark hover:text-white focus:ring-nexus-dark",
	ButtonSecondaryWhite: "border-2 border-white text-white bg-transparent hover:bg-nexus-yellow hover:text-nexus-dark hover:border-nexus-yellow focus:ring-nexus-yellow",
}

// ButtonClass composes the class list for a button or button-styled link.
// Unknown variants and sizes fall back to primary and default.
func ButtonClass(variant, size string, disabled bool, extra ...string) string {
	v, ok := buttonVariants[variant]
	if !ok {
		v = buttonVariants[ButtonPrimary]
	}
	s, ok := buttonSizes[size]
	if !ok {
		s = buttonSizes[SizeDefault]
	}
	parts := []string{buttonBase, s, v}
	if disabled {
		parts = append(parts, "opacity-50 cursor-not-allowed")
	}
	for _, e := range extra {
		if e = strings.TrimSpace(e); e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, " ")
}
