package models

// Service is a catalog entry for a service the studio offers. The catalog is
// compiled-in configuration, never stored or mutated at runtime. Orders
// reference a Service loosely by title.
type Service struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"` // icon identifier for the storefront
	MinPrice    float64 `json:"min_price"`
}

// Services is the static catalog presented on the storefront and used to
// build the AI assistant's system prompt.
var Services = []Service{
	{
		Title:       "Logo & Brand Identity",
		Description: "Crafting unique logos and comprehensive brand guidelines to make your business stand out.",
		Icon:        "logo-design",
		MinPrice:    99,
	},
	{
		Title:       "Website Design",
		Description: "Designing responsive, user-friendly websites that look great on any device.",
		Icon:        "web-design",
		MinPrice:    299,
	},
	{
		Title:       "Typesetting",
		Description: "Professional typesetting for documents, books, and reports, ensuring a clean and readable layout.",
		Icon:        "typesetting",
		MinPrice:    49,
	},
	{
		Title:       "Video Editing",
		Description: "Professional video editing for promotional content, social media, and more.",
		Icon:        "video-editing",
		MinPrice:    79,
	},
}

// ServiceByTitle returns the catalog entry with the given title, if any.
func ServiceByTitle(title string) (Service, bool) {
	for _, s := range Services {
		if s.Title == title {
			return s, true
		}
	}
	return Service{}, false
}
