package store

import "github.com/bertagmachine/recruit-funnel/internal/models"

func seedColleges() []models.College {
	return []models.College{
		{
			ID:       "1",
			Name:     "University of Florida",
			Division: "NCAA D1",
			Location: "Gainesville, FL",
			Stage:    models.StageVisitScheduled,
			Interest: 5,
			Coaches: []models.Coach{
				{Name: "Billy Napier", Title: "Head Coach"},
				{Name: "Rob Sale", Title: "OL Coach"},
			},
			Interactions: []models.Interaction{
				{ID: "i1", Date: "2026-02-12", Type: models.InteractionText, CoachName: "Rob Sale", Notes: "Discussed campus visit details and weight room session."},
				{ID: "i2", Date: "2026-01-15", Type: models.InteractionCall, CoachName: "Billy Napier", Notes: "Introduction call."},
			},
		},
		{
			ID:       "2",
			Name:     "University of Michigan",
			Division: "NCAA D1",
			Location: "Ann Arbor, MI",
			Stage:    models.StageContacted,
			Interest: 4,
			Coaches:  []models.Coach{{Name: "Sherrone Moore", Title: "Head Coach"}},
			Interactions: []models.Interaction{
				{ID: "i3", Date: "2026-02-11", Type: models.InteractionEmail, CoachName: "Recruiting Staff", Notes: "Sent transcripts and highlight reel update."},
			},
		},
		{
			ID:       "3",
			Name:     "Utah State University",
			Division: "NCAA D1",
			Location: "Logan, UT",
			Stage:    models.StageVisitScheduled,
			Interest: 2,
			Coaches:  []models.Coach{{Name: "Nate Dreiling", Title: "Interim HC"}},
			Interactions: []models.Interaction{
				{ID: "i4", Date: "2026-02-11", Type: models.InteractionEmail, CoachName: "Recruiting Staff", Notes: "Responded to questionnaire."},
			},
		},
		{
			ID:       "4",
			Name:     "Baltimore City Community College",
			Division: "NJCAA D2",
			Location: "Baltimore, MD",
			Stage:    models.StageIdentified,
			Interest: 1,
			Coaches:  []models.Coach{},
			Interactions: []models.Interaction{
				{ID: "i5", Date: "2026-02-11", Type: models.InteractionEmail, CoachName: "None", Notes: "Initial outreach sent."},
			},
		},
		{
			ID:           "5",
			Name:         "Ohio State University",
			Division:     "NCAA D1",
			Location:     "Columbus, OH",
			Stage:        models.StageIdentified,
			Interest:     4,
			Coaches:      []models.Coach{{Name: "Ryan Day", Title: "Head Coach"}},
			Interactions: []models.Interaction{},
		},
		{
			ID:       "6",
			Name:     "University of Alabama",
			Division: "NCAA D1",
			Location: "Tuscaloosa, AL",
			Stage:    models.StageTwoWayInterest,
			Interest: 4,
			Coaches:  []models.Coach{{Name: "Kalen DeBoer", Title: "Head Coach"}},
			Interactions: []models.Interaction{
				{ID: "i6", Date: "2026-01-20", Type: models.InteractionVisit, CoachName: "Kalen DeBoer", Notes: "Game day visit."},
			},
		},
		{
			ID:       "7",
			Name:     "Miles Community College",
			Division: "NJCAA D2",
			Location: "Miles City, MT",
			Stage:    models.StageCommitted,
			Interest: 5,
			Coaches:  []models.Coach{},
			Interactions: []models.Interaction{
				{ID: "i7", Date: "2026-02-01", Type: models.InteractionCall, CoachName: "Coach X", Notes: "Verbally committed!"},
			},
		},
	}
}

func seedAthlete() models.Athlete {
	return models.Athlete{
		Name:       "Bertag Machine",
		Sport:      "Football",
		Position:   "Offensive Line (OT/OG)",
		Class:      "2027",
		GPA:        "3.85",
		Height:     "6'5\"",
		Weight:     "295 lbs",
		Hometown:   "Atlanta, GA",
		Highschool: "Northside Prep Academy",
		Stats: []models.StatEntry{
			{Label: "Bench Press", Value: "355 lbs"},
			{Label: "Squat", Value: "515 lbs"},
			{Label: "40-Yard Dash", Value: "5.2s"},
			{Label: models.WingspanStat, Value: "81\""},
		},
		Bio:            "Dominant offensive lineman with high football IQ and elite mobility. 4-star recruit seeking a program with strong engineering curriculum and championship culture.",
		ProfileImage:   "https://picsum.photos/seed/athlete1/100/100",
		HighlightVideo: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		SocialLinks: models.SocialLinks{
			Twitter:   "https://twitter.com/bertag_ol",
			Instagram: "https://instagram.com/bertagmachine77",
			Hudl:      "https://hudl.com/profile/bertagmachine",
		},
	}
}
