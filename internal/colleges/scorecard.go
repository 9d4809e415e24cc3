package colleges

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultScorecardURL is the College Scorecard schools endpoint.
const DefaultScorecardURL = "https://api.data.gov/ed/collegescorecard/v1/schools.json"

// ScorecardClient searches the US Department of Education College
// Scorecard dataset by school name.
type ScorecardClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewScorecardClient creates a Scorecard client. An empty apiKey is
// allowed; Search then reports that the client is not configured.
func NewScorecardClient(apiKey string) *ScorecardClient {
	return &ScorecardClient{
		apiKey:  apiKey,
		baseURL: DefaultScorecardURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetBaseURL overrides the Scorecard endpoint. Used in tests.
func (c *ScorecardClient) SetBaseURL(u string) {
	c.baseURL = u
}

// Configured reports whether an API key is present.
func (c *ScorecardClient) Configured() bool {
	return c.apiKey != ""
}

type scorecardResult struct {
	Results []map[string]interface{} `json:"results"`
}

// Search queries the Scorecard API for schools matching the name. The
// returned candidates map the institution level onto the coarse division
// buckets the dataset can support.
func (c *ScorecardClient) Search(ctx context.Context, name string) ([]Candidate, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("college scorecard api key not configured")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("school.name", name)
	params.Set("fields", "school.name,school.city,school.state,school.institutional_characteristics.level")
	params.Set("per_page", "10")
	params.Set("sort", "school.name")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scorecard request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scorecard returned status %d", resp.StatusCode)
	}

	var payload scorecardResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode scorecard response: %w", err)
	}

	out := []Candidate{}
	for _, item := range payload.Results {
		name, _ := item["school.name"].(string)
		city, _ := item["school.city"].(string)
		state, _ := item["school.state"].(string)

		// Level 1 is 4-year, level 2 is 2-year; anything else is unknown
		division := "Other"
		if level, ok := item["school.institutional_characteristics.level"].(float64); ok {
			switch int(level) {
			case 1:
				division = "NCAA D1/D2/D3 (4-Year)"
			case 2:
				division = "NJCAA/CCCAA (2-Year)"
			}
		}

		out = append(out, Candidate{
			Name:     name,
			Division: division,
			Location: fmt.Sprintf("%s, %s", city, state),
		})
	}
	return out, nil
}
