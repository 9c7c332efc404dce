// Package report holds the static Maritime Pilot Report form taxonomy: the
// mapping from field identifiers to their section and display label. Field
// identifiers outside the taxonomy are tolerated everywhere and rendered
// under their raw identifier.
package report

// FieldInfo describes where a form field lives and how it is displayed.
type FieldInfo struct {
	Section string
	Label   string
}

// FieldWorkload is the numeric-scale field whose suggested values are
// coerced to canonical digit strings before display.
const FieldWorkload = "workload"

// catalog maps field identifiers to their section and label. Keep in sync
// with the frontend form definition.
var catalog = map[string]FieldInfo{
	"report-number":       {Section: "Report Information", Label: "Report Number"},
	"report-date":         {Section: "Report Information", Label: "Date"},
	"observation-time":    {Section: "Report Information", Label: "Time of Observation"},
	"location":            {Section: "Report Information", Label: "Location"},
	"vessel-name":         {Section: "Vessel and Pilot Details", Label: "Vessel Name"},
	"imo-number":          {Section: "Vessel and Pilot Details", Label: "IMO Number"},
	"vessel-type":         {Section: "Vessel and Pilot Details", Label: "Type of Vessel"},
	"pilot-id":            {Section: "Vessel and Pilot Details", Label: "Pilot Name/ID"},
	"boarding-time":       {Section: "Vessel and Pilot Details", Label: "Boarding Time"},
	"disembarking-time":   {Section: "Vessel and Pilot Details", Label: "Disembarking Time"},
	"hazards-description": {Section: "Safety Observations", Label: "Hazards"},
	"visibility":          {Section: "Safety Observations", Label: "Visibility"},
	"sea-state":           {Section: "Safety Observations", Label: "Sea State"},
	"wind-conditions":     {Section: "Safety Observations", Label: "Wind Conditions"},
	"transfer-method":     {Section: "Pilot Transfer Arrangements", Label: "Transfer Method"},
	"transfer-location":   {Section: "Pilot Transfer Arrangements", Label: "Transfer Location"},
	"transfer-issues":     {Section: "Pilot Transfer Arrangements", Label: "Transfer Issues"},
	"incident-details":    {Section: "Incident Reporting", Label: "Incident Details"},
	"pilotage-comments":   {Section: "Pilotage Recommendations", Label: "Pilotage Comments"},
	"improvements":        {Section: "Pilotage Recommendations", Label: "Improvements"},
	"workload":            {Section: "Work-Related Stress", Label: "Workload"},
	"stress-feedback":     {Section: "Work-Related Stress", Label: "Stress Feedback"},
}

// Lookup returns the taxonomy entry for a field identifier. The second
// return value is false for fields outside the taxonomy.
func Lookup(field string) (FieldInfo, bool) {
	info, ok := catalog[field]
	return info, ok
}

// Label returns the display label for a field, falling back to the raw
// identifier when the field is unknown.
func Label(field string) string {
	if info, ok := catalog[field]; ok {
		return info.Label
	}
	return field
}

// Fields returns all known field identifiers. Order is unspecified.
func Fields() []string {
	out := make([]string, 0, len(catalog))
	for f := range catalog {
		out = append(out, f)
	}
	return out
}
