package intel

import (
	"fmt"
	"strings"
	"time"
)

// AllLeadersRole asks the leadership scan for the full key-leadership team
// instead of one exact-title match.
const AllLeadersRole = "All Key Leaders"

// AllMedia is the media-type filter value meaning "no media filter".
const AllMedia = "All Media"

// MediaTypes are the media-scope filter options offered by the dashboard.
var MediaTypes = []string{
	AllMedia,
	"Digital",
	"Out of Home",
	"Social Media",
	"Creative",
	"Media Buying",
	"PR & Comms",
}

// Regions are the news-region filter options.
var Regions = []string{
	"APAC",
	"China",
	"ANZ",
	"Middle East",
	"Africa",
	"Europe",
	"Americas",
	"Global",
}

// Topics are the digest subscription topics.
var Topics = []string{
	"Agency Business",
	"People Moves",
	"Creative Work",
	"Tech & AI",
	"Account Wins",
	"Mergers & Acquisitions",
	"Events & Awards",
}

// CommonRoles are the leadership-scan role presets.
var CommonRoles = []string{
	AllLeadersRole,
	"CEO",
	"CMO",
	"Head of Marketing",
	"Media Director",
	"Trading Head",
	"President",
	"Client Leader",
	"Client Partner",
	"Media Planner",
	"Creative Director",
	"Chief Strategy Officer",
}

// Source is one curated trade publication the market scan is steered toward.
type Source struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Sources is the curated roster of trade journals, insight portals and
// holding groups fed to the market-scan prompt as target sources.
var Sources = []Source{
	{"Campaign Asia-Pacific", "https://www.campaignasia.com/", "News", "The most prestigious trade publication in the region, known for Agency of the Year and high-level industry analysis."},
	{"Marketing-Interactive", "https://www.marketing-interactive.com/", "News", "Highly active news portal covering Singapore, Malaysia, Hong Kong, Philippines, Indonesia, and Thailand."},
	{"The Drum (APAC)", "https://www.thedrum.com/asia-pacific", "News", "Global publication with a dedicated APAC team covering creative reviews and rankings."},
	{"Branding in Asia", "https://www.brandinginasia.com/", "News", "Brand news, creative work, and profiles of industry people in Asia."},
	{"Digital Market Asia", "https://www.digitalmarket.asia/", "News", "The digital marketing ecosystem: adtech, martech, and digital media."},
	{"Ad Age", "https://adage.com/", "Global", "Essential for big brand news, agency rankings, and the A-List."},
	{"Adweek", "https://www.adweek.com/", "Global", "The intersection of media, marketing, and technology."},
	{"Campaign (Global)", "https://www.campaignlive.com/", "Global", "Agency performance coverage, School Reports, and the Power 100."},
	{"Digiday", "https://digiday.com/", "Global", "Modern media and ad-tech, focused on the business side of platforms."},
	{"Think with Google APAC", "https://www.thinkwithgoogle.com/intl/en-apac/", "Insights", "Data, insights, consumer behavior statistics, and search trends."},
	{"WARC", "https://www.warc.com/", "Insights", "Effectiveness research and case studies proving ROI."},
	{"eMarketer", "https://www.emarketer.com/", "Insights", "Digital ad spend forecasts and benchmarks."},
	{"Ads of the World", "https://www.adsoftheworld.com/", "Specialized", "A searchable archive of ad campaigns from every country."},
	{"Adobo Magazine", "https://www.adobomagazine.com/", "Specialized", "A major voice for creativity, design, and arts across Asia."},
	{"Tech in Asia", "https://www.techinasia.com/", "Specialized", "Startup and technology ecosystem across Asian markets."},
	{"WPP", "https://www.wpp.com", "Global", "The world's largest advertising company, parent to Ogilvy, VML, and GroupM."},
	{"Publicis Groupe", "https://www.publicisgroupe.com", "Global", "Parent to Leo Burnett, Saatchi & Saatchi, and Starcom."},
	{"Omnicom Group", "https://www.omnicomgroup.com", "Global", "Holding BBDO, DDB, and TBWA."},
	{"Dentsu", "https://www.dentsu.com", "Global", "Japanese advertising and PR group operating globally."},
	{"Havas", "https://www.havas.com", "Global", "French multinational advertising and PR company."},
}

func sourceNames() string {
	names := make([]string, len(Sources))
	for i, s := range Sources {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

// briefingPrompt builds the daily-news instruction for a region.
func briefingPrompt(region string) string {
	return fmt.Sprintf(`Act as a senior news editor for the %[1]s advertising and marketing industry.

TASK:
Scan the web for the top 6-8 most significant news stories from the last 24 hours specifically related to the %[1]s market.
Prioritize news from high-quality trade journals and business news sources.

FOCUS AREAS:
1. Major Account Wins or Reviews in %[1]s
2. C-Suite People Moves in %[1]s (CEO, CCO, CMO level)
3. Significant Mergers & Acquisitions or Business Restructuring in %[1]s
4. Major Tech/AI announcements impacting advertising in %[1]s

OUTPUT FORMAT:
Categorize each story into a broad topic (e.g., "Agency Business", "People Moves", "Creative Work", "Tech & AI").

Return the data strictly as a pipe-separated list (one story per line). Do not include a table header.
Format:
Category | Headline | Brief Summary (Max 15 words) | Target Audience | Source Name | Visual Search Query

The "Visual Search Query" should be a short, descriptive phrase (3-5 words) describing a relevant image for the story.`, region)
}

// oohPrompt builds the out-of-home campaign feed instruction.
func oohPrompt(region string) string {
	return fmt.Sprintf(`Act as an Out-of-Home (OOH) media specialist for the %[1]s market.

TASK:
Scan the web for the top 6 recent OOH, DOOH, Retail Media, and Transit media campaigns launched in %[1]s within the last 7-14 days.

FOCUS AREAS:
1. Innovative Billboards & Spectaculars
2. Digital Out of Home (DOOH) activations (3D billboards, interactive screens)
3. Transit Advertising (Bus, Train, Airport, Subway wraps)
4. Retail Media & In-store activations

OUTPUT FORMAT:
Categorize each story into a specific media type (e.g., "Large Format OOH", "DOOH", "Transit Media", "Retail Media", "Airport Ads").

Return the data strictly as a pipe-separated list (one story per line). Do not include a table header.
Format:
Category | Brand/Campaign Headline | Brief Description of the Creative/Location | Target Audience | Source Name | Visual Description`, region)
}

// marketScanPrompt builds the account-win scan instruction. With any
// non-default filter it runs a targeted year-to-date search; otherwise it is
// a seven-day pulse scan. The second return reports which mode was chosen.
func marketScanPrompt(query, country, media string, now time.Time) (string, bool) {
	hasMediaFilter := media != "" && media != AllMedia
	targeted := strings.TrimSpace(query) != "" || strings.TrimSpace(country) != "" || hasMediaFilter

	var task, timeRange string
	if targeted {
		task = "Find all agency-client appointments, account wins, and creative/media reviews"
		var constraints []string
		if q := strings.TrimSpace(query); q != "" {
			constraints = append(constraints, fmt.Sprintf("involving %q (including all associated subsidiaries, partner agencies, and holding group entities)", q))
		}
		if c := strings.TrimSpace(country); c != "" {
			constraints = append(constraints, fmt.Sprintf("specifically within the market of %q", c))
		}
		if hasMediaFilter {
			constraints = append(constraints, fmt.Sprintf("related to %q media duties/scope", media))
		}
		task += " " + strings.Join(constraints, " and ") + "."
		timeRange = fmt.Sprintf("Year to Date (from January 1, %d to Present)", now.Year())
	} else {
		task = `Scan for the LATEST announcements regarding "Agency Wins", "Client Appointments", and "Creative/Media Reviews".`
		timeRange = "Past 7 Days (Weekly Scan)"
	}

	mode := "WEEKLY PULSE SCAN"
	if targeted {
		mode = "TARGETED SEARCH (Year to Date)"
	}
	focus := ""
	if strings.TrimSpace(country) != "" {
		focus = fmt.Sprintf(" (Focus: %s)", strings.TrimSpace(country))
	}

	prompt := fmt.Sprintf(`Act as an automated market intelligence scanner for the APAC advertising industry.
MODE: %s
TASK: %s
SCOPE: Region: Asia-Pacific (APAC)%s - Time Range: %s
TARGET SOURCES: %s

OUTPUT FORMAT:
Generate a simple Markdown table with exactly these columns:
| Agency | Client | Country (APAC) | Target Audience | Source |
Do not include markdown code blocks. Just return the raw table text.`,
		mode, task, focus, timeRange, sourceNames())
	return prompt, targeted
}

// leadershipPrompt builds the people-finder instruction.
func leadershipPrompt(role, company, country string) string {
	var task, listHint string
	if role == AllLeadersRole {
		task = fmt.Sprintf("Find the key leadership team (top 5-8 executives like CEO, MD, CMO, Head of Media, Strategy Lead) at %q located in %q.", company, country)
		listHint = "4. Return a list of the top key personnel found."
	} else {
		task = fmt.Sprintf("Find the specific person who currently holds the title of %q (or equivalent closest leadership role) at %q located in %q.", role, company, country)
		listHint = "4. If you cannot find an exact match, find the closest relevant senior leader."
	}

	return fmt.Sprintf(`TASK:
%s

INSTRUCTIONS:
1. Search for the most current information.
2. Identify the Full Name and Exact Job Title for each key person found.
3. Find the public URL to their LinkedIn profile.
%s
5. If a direct LinkedIn URL is not found, generate a valid LinkedIn search URL.

OUTPUT FORMAT:
Return a pipe-separated list (one person per line).
Format:
Name | Exact Role | LinkedIn URL`, task, listHint)
}

// masterPrompt builds the composite deep-dive report instruction.
func masterPrompt(query string) string {
	return fmt.Sprintf(`Act as a Chief Intelligence Officer for the advertising industry.

QUERY: %[1]q
TIMEFRAME: Last 12 Months

TASK:
Provide a comprehensive deep-dive report on %[1]q.
You must cover the following areas based on data from the last year.

1. EXECUTIVE SUMMARY:
Write a concise 2-3 sentence summary of the entity's performance, key strategic shifts, or market position in the last year.

2. RECENT NEWS (Last 12 Months):
Find 4-5 key news headlines involving %[1]q. Focus on business growth, controversies, or major announcements.
Format: Category | Headline | Brief Summary | Target Audience | Source
(Categories examples: Business, People, Work, Legal, Finance)

3. KEY LEADERSHIP:
Identify 3-4 key figures currently associated with %[1]q (e.g., CEO, CMO, ECD).
Format: Name | Role | LinkedIn URL (or type "Search")

4. WINS & WORK (Last 12 Months):
Find 3-4 significant account wins, campaign launches, or client partnerships involving %[1]q.
Format: Agency | Client | Country | Target Audience | Source

OUTPUT FORMAT:
Use strictly defined section headers.

### SUMMARY
(Text here)

### NEWS
(Pipe separated list here)

### PEOPLE
(Pipe separated list here)

### WINS
(Pipe separated list here)`, query)
}
