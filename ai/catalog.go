package ai

// IssueTypes is the fixed catalog of recognizable issue labels.
var IssueTypes = []string{
	"Pothole",
	"Broken Streetlight",
	"Graffiti",
	"Illegal Dumping",
	"Fallen Tree",
}

var descriptions = map[string]string{
	"Pothole":            "Image shows a road defect characterized as a pothole. The depression in the road surface appears to be approximately 30-40cm in diameter with jagged edges. This could pose hazards to vehicles and requires repair.",
	"Broken Streetlight": "The image shows a non-functioning streetlight. The light fixture appears intact but is not illuminated during what seems to be evening hours. This creates a safety concern for pedestrians and vehicles in the area.",
	"Graffiti":           "Unauthorized marking/painting detected on public property. The graffiti appears to cover approximately 1-2 square meters of surface area with multiple colors used.",
	"Illegal Dumping":    "The image shows improperly disposed waste materials in a public area. This may include household items, construction debris, or general refuse placed outside designated disposal areas.",
	"Fallen Tree":        "A tree has fallen and is obstructing a path/road. The tree appears to be medium-sized and may be blocking vehicle or pedestrian traffic. Immediate removal is recommended to restore normal access.",
}

var authorities = map[string]string{
	"Illegal Dumping":    "Environmental Services",
	"Graffiti":           "Parks Department",
	"Broken Streetlight": "Public Works - Electrical",
	"Fallen Tree":        "Parks & Recreation Department",
}

// DescriptionFor returns the canned description for an issue type, or "".
func DescriptionFor(issueType string) string {
	return descriptions[issueType]
}

// AuthorityFor maps an issue type to its responsible department. Unmapped
// types fall back to City Maintenance.
func AuthorityFor(issueType string) string {
	if a, ok := authorities[issueType]; ok {
		return a
	}
	return "City Maintenance"
}

// FallbackPredictions is the fixed candidate list used when every
// classification backend is unreachable.
var FallbackPredictions = []Prediction{
	{Label: "Pothole", Confidence: 0.85},
	{Label: "Broken Sidewalk", Confidence: 0.65},
	{Label: "Water Damage", Confidence: 0.45},
}
