package email

// Message is one outbound email. Alias selects the sending account;
// empty means the configured default.
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
	Alias    string
}

// TemplateData feeds the HTML mail templates.
type TemplateData struct {
	UserName     string
	ActionURL    string
	ActionText   string
	CompanyName  string
	SupportEmail string
	SupportPhone string
	ExpireHours  int
	OrderTitle   string
	OrderPrice   float64
}
