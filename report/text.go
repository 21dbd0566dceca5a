// Package report renders classified districts and dashboards into
// downloadable artifacts: the plain-text intelligence brief, an xlsx
// workbook and PNG bar charts. Renderers only format values computed by the
// engine and intel packages.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sharon-codes/UIDAI-Hackathon/intel"
	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// Meta identifies one generated report.
type Meta struct {
	GeneratedAt time.Time
	Reference   string
}

// NewMeta stamps a report with the given time and a fresh reference id.
func NewMeta(now time.Time) Meta {
	return Meta{GeneratedAt: now, Reference: uuid.NewString()}
}

const rule = "---------------------------------"

// reportMeasures are the core metrics of the text report, in print order.
var reportMeasures = []string{schema.KeyAMI, schema.KeyERP, schema.KeyICMP, schema.KeyLastMile}

// BuildText renders the fixed-layout intelligence brief download for a
// record. The record is reported as stored; FutureCast never applies here.
func BuildText(rec schema.Record, meta Meta) string {
	a := intel.AssessForReport(rec)

	integrity := "Secure"
	if rec.GhostFlag {
		integrity = "ANOMALY DETECTED [CRITICAL]"
	}

	var b strings.Builder
	b.WriteString("UIDAI REGIONAL INTELLIGENCE BRIEF\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", meta.GeneratedAt.Format("02/01/2006"))
	if meta.Reference != "" {
		fmt.Fprintf(&b, "Reference: %s\n", meta.Reference)
	}
	fmt.Fprintf(&b, "District: %s\n", strings.ToUpper(rec.District))
	fmt.Fprintf(&b, "State: %s\n\n", strings.ToUpper(rec.State))

	b.WriteString("CORE METRICS\n")
	b.WriteString(rule + "\n")
	measures := schema.Default()
	for _, key := range reportMeasures {
		m := measures.MustMeasure(key)
		value := m.Format(rec.Value(key))
		if m.Unit == "/10" {
			value += " / 10"
		}
		fmt.Fprintf(&b, "%s: %s\n", m.DisplayName, value)
	}
	fmt.Fprintf(&b, "Integrity Status: %s\n\n", integrity)

	b.WriteString("STRATEGIC ASSESSMENT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "1. Exclusion Analysis:\n   %s\n\n", a.Exclusion)
	fmt.Fprintf(&b, "2. Migration Analysis:\n   %s\n\n", a.Migration)
	fmt.Fprintf(&b, "3. Integrity Audit:\n   %s\n\n", a.Integrity)

	b.WriteString("RECOMMENDED ACTIONS\n")
	b.WriteString(rule + "\n")
	b.WriteString("- Deploy mobile vans to high-density wards (if ERP > 10%).\n")
	b.WriteString("- Activate ONORC desks at transport hubs (if ICMP > 15%).\n")
	b.WriteString("- Conduct operator audit (if Integrity Flagged).\n\n")

	b.WriteString(rule + "\n")
	b.WriteString("CONFIDENTIAL - FOR OFFICIAL USE ONLY\n")
	return b.String()
}

// Filename is the download name for a district brief.
func Filename(district string, t time.Time) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", "\"", "").Replace(district)
	return fmt.Sprintf("Intelligence_Brief_%s_%d.txt", safe, t.UnixMilli())
}

// FormatBrief renders a full intelligence brief as plain text with the
// **bold** markers stripped.
func FormatBrief(br intel.Brief) string {
	var b strings.Builder

	title := strings.ToUpper(br.Metrics.District)
	if br.Mode == intel.FutureCast {
		title += " (PROJECTED)"
	}
	fmt.Fprintf(&b, "INTELLIGENCE BRIEF: %s, %s\n\n", title, strings.ToUpper(br.Metrics.State))

	fmt.Fprintf(&b, "AMI %.1f/10 | ERP %.1f%% | ICMP %.1f%% | Inclusion %.1f%%\n\n",
		math.Min(br.Metrics.AMI, 10), br.Metrics.ERP, br.Metrics.ICMP, br.Metrics.LastMile)

	fmt.Fprintf(&b, "RISK ASSESSMENT: %s (%d%%)\n", br.Risk.Level, br.Risk.Score)
	if len(br.Risk.Factors) > 0 {
		factors := make([]string, len(br.Risk.Factors))
		for i, f := range br.Risk.Factors {
			factors[i] = string(f)
		}
		fmt.Fprintf(&b, "Critical Factors: %s\n", strings.Join(factors, ", "))
	}

	section(&b, fmt.Sprintf("REGIONAL CLASSIFICATION [%s]", br.Regional), br.RegionalContext)

	section(&b, fmt.Sprintf("COMPLIANCE VECTOR [%s] - Priority: %s", br.Compliance.Severity, br.Compliance.Priority),
		br.Compliance.Status+"\n"+br.Compliance.Action+
			"\nTIMELINE: "+br.Compliance.Timeline+
			"\nBUDGET: "+br.Compliance.Budget)

	section(&b, fmt.Sprintf("MIGRATION PATTERN [%s]", br.Migration.Pattern),
		br.Migration.Status+"\n"+br.Migration.Insight+
			"\nECONOMIC IMPACT: "+br.Migration.EconomicImpact+
			"\n"+br.Migration.Recommendation)

	section(&b, "INCLUSION", br.Inclusion.Text)

	integrity := br.Integrity.Alert + "\n" + br.Integrity.Detail + "\n" + br.Integrity.Action
	if br.Integrity.LegalAction != "" {
		integrity += "\nLEGAL ACTION: " + br.Integrity.LegalAction
	}
	section(&b, fmt.Sprintf("INTEGRITY STATUS [%s]", br.Integrity.Status), integrity)

	if len(br.Strategy) > 0 {
		b.WriteString("\nSTRATEGY\n")
		for _, c := range br.Strategy {
			fmt.Fprintf(&b, "- %s: %s\n", c.Title, StripMarkup(c.Body))
		}
	}
	return b.String()
}

func section(b *strings.Builder, heading, body string) {
	fmt.Fprintf(b, "\n► %s\n%s\n", heading, StripMarkup(body))
}

// StripMarkup removes **bold** markers from narrative text.
func StripMarkup(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
