package catalog

import "github.com/founder-srm/foundathon/internal/model"

// defaultStatements is the problem statement list for the current edition.
// Cap is filled in by Default from deployment config.
var defaultStatements = []model.ProblemStatement{
	{
		ID:      "ps-01",
		Title:   "Campus Navigation for Accessibility",
		Summary: "Build an indoor/outdoor routing tool that finds step-free, accessible paths across campus for students with mobility constraints.",
	},
	{
		ID:      "ps-02",
		Title:   "Mess Demand Forecasting",
		Summary: "Predict daily meal demand from historical swipe data to cut food waste in university dining halls.",
	},
	{
		ID:      "ps-03",
		Title:   "Peer Tutoring Marketplace",
		Summary: "Match students who need help in a course with peers who recently aced it, with scheduling and reputation built in.",
	},
	{
		ID:      "ps-04",
		Title:   "Hostel Maintenance Tracker",
		Summary: "A ticketing flow for hostel repairs with photo evidence, SLA timers, and a public status board.",
	},
	{
		ID:      "ps-05",
		Title:   "Smart Energy Dashboard",
		Summary: "Aggregate building-level power metering into live dashboards and anomaly alerts for the campus facilities team.",
	},
	{
		ID:      "ps-06",
		Title:   "Lost and Found Exchange",
		Summary: "Computer-vision assisted matching of lost item reports against found item photos posted by campus security.",
	},
	{
		ID:      "ps-07",
		Title:   "Event Shuttle Pooling",
		Summary: "Coordinate shared cab and shuttle rides for students travelling to off-campus events, optimising for cost and departure windows.",
	},
	{
		ID:      "ps-08",
		Title:   "Open Source Health Records",
		Summary: "A privacy-first personal health locker that lets students carry vaccination and clinic records between campus providers.",
	},
}
