package entity

// Page is a static content document shown from the sidebar menu
type Page struct {
	Slug     string        `json:"slug"`
	Title    string        `json:"title"`
	Icon     string        `json:"icon"`
	Sections []PageSection `json:"sections,omitempty"`
	Form     *ContactForm  `json:"form,omitempty"`
}

// PageSection is a titled block of markdown
type PageSection struct {
	Heading string   `json:"heading,omitempty"`
	Body    string   `json:"body,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// ContactForm describes an HTML enquiry form handled by an external service
type ContactForm struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Fields []FormField `json:"fields"`
}

// FormField is a single input of a ContactForm
type FormField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

// MenuItem is a sidebar entry
type MenuItem struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}
