package intel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarketScanPrompt_ModeSelection(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    string
		country  string
		media    string
		targeted bool
	}{
		{"no filters is a pulse scan", "", "", "", false},
		{"all-media sentinel is not a filter", "", "", AllMedia, false},
		{"query switches to targeted", "Ogilvy", "", "", true},
		{"country switches to targeted", "", "Japan", "", true},
		{"media switches to targeted", "", "", "Digital", true},
		{"whitespace query is not a filter", "   ", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, targeted := marketScanPrompt(tt.query, tt.country, tt.media, now)
			assert.Equal(t, tt.targeted, targeted)
			if tt.targeted {
				assert.Contains(t, prompt, "TARGETED SEARCH (Year to Date)")
				assert.Contains(t, prompt, "January 1, 2026")
			} else {
				assert.Contains(t, prompt, "WEEKLY PULSE SCAN")
				assert.Contains(t, prompt, "Past 7 Days")
			}
		})
	}
}

func TestMarketScanPrompt_CarriesFiltersAndSources(t *testing.T) {
	prompt, _ := marketScanPrompt("Ogilvy", "Singapore", "Digital", time.Now())
	assert.Contains(t, prompt, `"Ogilvy"`)
	assert.Contains(t, prompt, `"Singapore"`)
	assert.Contains(t, prompt, `"Digital"`)
	assert.Contains(t, prompt, "Campaign Asia-Pacific")
	assert.Contains(t, prompt, "| Agency | Client | Country (APAC) | Target Audience | Source |")
}

func TestLeadershipPrompt_AllLeadersSentinel(t *testing.T) {
	prompt := leadershipPrompt(AllLeadersRole, "Dentsu", "Japan")
	assert.Contains(t, prompt, "key leadership team")
	assert.NotContains(t, prompt, AllLeadersRole, "the sentinel is a mode switch, not a title to search for")

	prompt = leadershipPrompt("CMO", "Dentsu", "Japan")
	assert.Contains(t, prompt, `"CMO"`)
	assert.Contains(t, prompt, "closest relevant senior leader")
}

func TestBriefingPrompt_RegionAndFormat(t *testing.T) {
	prompt := briefingPrompt("Singapore")
	assert.Contains(t, prompt, "Singapore")
	assert.Contains(t, prompt, "Do not include a table header")
	assert.Contains(t, prompt, "Visual Search Query")
}

func TestMasterPrompt_SectionHeaders(t *testing.T) {
	prompt := masterPrompt("Ogilvy")
	for _, header := range []string{"### SUMMARY", "### NEWS", "### PEOPLE", "### WINS"} {
		assert.Contains(t, prompt, header)
	}
}
