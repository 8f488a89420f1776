// Package intel turns user filters into generation instructions and the
// resulting free text into typed market-intelligence records.
package intel

// AccountWin is one agency-client appointment or account win.
type AccountWin struct {
	ID       string `json:"id"`
	Agency   string `json:"agency"`
	Client   string `json:"client"`
	Country  string `json:"country"`
	Audience string `json:"audience,omitempty"`
	Source   string `json:"source"`
	// Date is the scan date, not a date recovered from the source text.
	Date string `json:"date"`
}

// NewsItem is one industry news story or OOH campaign sighting.
type NewsItem struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Headline   string `json:"headline"`
	Summary    string `json:"summary"`
	Audience   string `json:"audience,omitempty"`
	Source     string `json:"source"`
	ImageQuery string `json:"image_query,omitempty"`
}

// LeaderProfile is one executive found by a leadership scan. Company and
// country are carried from the request, not recovered from the response.
type LeaderProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Country     string `json:"country"`
	LinkedInURL string `json:"linkedin_url"`
}

// MasterReport is the four-section composite produced by a master search.
type MasterReport struct {
	Query   string          `json:"query"`
	Summary string          `json:"summary"`
	News    []NewsItem      `json:"news"`
	Leaders []LeaderProfile `json:"leaders"`
	Wins    []AccountWin    `json:"wins"`
}

// DefaultSummary is served when the SUMMARY section is absent from the
// generated report.
const DefaultSummary = "No summary available."
