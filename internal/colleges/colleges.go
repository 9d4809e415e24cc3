// Package colleges provides college reference data: the division list,
// a small built-in program database for instant suggestions, and a
// College Scorecard API client for broader lookups.
package colleges

import "strings"

// Candidate is a suggested college from the reference database or the
// Scorecard API, carrying just enough to prefill the add-college form.
type Candidate struct {
	Name     string `json:"name"`
	Division string `json:"division"`
	Location string `json:"location"`
}

// Divisions lists every division a college can be filed under, in the
// order the division picker shows them.
func Divisions() []string {
	return []string{
		"NCAA D1",
		"NCAA D2",
		"NCAA D3",
		"NAIA",
		"NJCAA D1",
		"NJCAA D2",
		"NJCAA D3",
		"CCCAA (California JUCO)",
		"Other",
	}
}

// localPrograms is the built-in reference database, used for suggestions
// that should appear instantly, before (or without) a Scorecard lookup.
var localPrograms = []Candidate{
	{Name: "University of Alabama", Division: "NCAA D1", Location: "Tuscaloosa, AL"},
	{Name: "University of Georgia", Division: "NCAA D1", Location: "Athens, GA"},
	{Name: "Ohio State University", Division: "NCAA D1", Location: "Columbus, OH"},
	{Name: "University of Michigan", Division: "NCAA D1", Location: "Ann Arbor, MI"},
	{Name: "University of Texas", Division: "NCAA D1", Location: "Austin, TX"},
	{Name: "University of Florida", Division: "NCAA D1", Location: "Gainesville, FL"},
	{Name: "Louisiana State University", Division: "NCAA D1", Location: "Baton Rouge, LA"},
	{Name: "Clemson University", Division: "NCAA D1", Location: "Clemson, SC"},
	{Name: "University of Notre Dame", Division: "NCAA D1", Location: "Notre Dame, IN"},
	{Name: "Penn State University", Division: "NCAA D1", Location: "University Park, PA"},
	{Name: "Grand Valley State University", Division: "NCAA D2", Location: "Allendale, MI"},
	{Name: "Ferris State University", Division: "NCAA D2", Location: "Big Rapids, MI"},
	{Name: "Valdosta State University", Division: "NCAA D2", Location: "Valdosta, GA"},
	{Name: "Mount Union University", Division: "NCAA D3", Location: "Alliance, OH"},
	{Name: "North Central College", Division: "NCAA D3", Location: "Naperville, IL"},
	{Name: "Morningside University", Division: "NAIA", Location: "Sioux City, IA"},
	{Name: "Iowa Western Community College", Division: "NJCAA D1", Location: "Council Bluffs, IA"},
	{Name: "Hutchinson Community College", Division: "NJCAA D1", Location: "Hutchinson, KS"},
	{Name: "Miles Community College", Division: "NJCAA D2", Location: "Miles City, MT"},
	{Name: "City College of San Francisco", Division: "CCCAA (California JUCO)", Location: "San Francisco, CA"},
}

// LocalSearch returns up to limit built-in programs whose name contains
// the query, case-insensitively.
func LocalSearch(query string, limit int) []Candidate {
	term := strings.ToLower(query)

	out := []Candidate{}
	for _, c := range localPrograms {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
