package mail

// reminderData is what the reminder templates render.
type reminderData struct {
	Subject      string
	Headline     string
	EmployeeName string
	Unit         string
	ContractEnd  string
	StatusLine   string
	Priority     string
	Color        string
	DashboardURL string
}

// Rendered is a ready-to-send message body pair.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}
