package notification

import (
	"bytes"
	"html/template"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Brand is the sender identity printed in every email.
type Brand struct {
	Name     string
	Legal    string
	Address  string
	Phone    string
	Email    string
	Website  string
	LogoCID  string
	Greeting string
}

// DefaultBrand is the JV Overseas identity.
var DefaultBrand = Brand{
	Name:     "JV Overseas",
	Legal:    "JV Overseas Pvt. Ltd.",
	Address:  "Medara Bazar, Chilakaluripet, AP",
	Phone:    "+91 8712275590",
	Email:    "jvoverseaspvtltd@gmail.com",
	Website:  "https://jvoverseas.com",
	LogoCID:  "jv-logo",
	Greeting: "Team JV Overseas",
}

// Email subjects
const (
	SubjectEligibility = "Loan Eligibility Check - JV Overseas"
	SubjectLoginOTP    = "Your Admin Login OTP"
)

// SubjectEnquiry builds the enquiry confirmation subject.
func SubjectEnquiry(enquiryType string) string {
	return "Enquiry Confirmation - " + enquiryType
}

// NextSteps are listed in every enquiry confirmation.
var NextSteps = []string{
	"Profile evaluation by our experts",
	"Personalized university recommendations",
	"Guidance on application process",
	"Scholarship and loan assistance",
}

type EligibilityEmail struct {
	Name           string
	IsEligible     bool
	EstimatedRange string
}

type EnquiryEmail struct {
	Name        string
	EnquiryType string
	// Details keys are humanized; empty values are skipped.
	Details map[string]string
}

type detailLine struct {
	Label string
	Value string
}

const layout = `
{{define "header"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px;">
<div style="text-align: center; margin-bottom: 20px;">
{{if .HasLogo}}<img src="cid:{{.Brand.LogoCID}}" alt="{{.Brand.Name}}" style="max-height: 60px;">{{else}}<h2>{{.Brand.Name}}</h2>{{end}}
</div>{{end}}
{{define "footer"}}<hr style="margin-top: 30px; border: none; border-top: 1px solid #eee;">
<p style="font-size: 12px; color: #666; text-align: center;">
{{.Brand.Legal}} | {{.Brand.Address}}<br>
&#128222; {{.Brand.Phone}} | &#9993;&#65039; {{.Brand.Email}}{{if .Brand.Website}}<br>
&#127760; <a href="{{.Brand.Website}}" style="color: #0066cc;">{{.Brand.Website}}</a>{{end}}
</p>
</div>{{end}}
`

const eligibilityBody = `{{template "header" .}}
<h2>Hello {{.Data.Name}},</h2>
<p>Your loan eligibility check is complete.</p>
<div style="background: #f0f7ff; padding: 15px; border-radius: 8px; margin: 20px 0;">
{{if .Data.IsEligible}}<b style="color: #28a745;">&#10003; Eligible:</b> {{.Data.EstimatedRange}}{{else}}<b>We need more details to confirm your eligibility.</b>{{end}}
</div>
<p>Our loan advisors will contact you shortly to discuss the next steps.</p>
<p style="margin-top: 30px;">Best regards,<br><b>{{.Brand.Greeting}}</b></p>
{{template "footer" .}}`

const enquiryBody = `{{template "header" .}}
<h2 style="color: #2c3e50;">Enquiry Received Successfully!</h2>
<p>Dear <b>{{.Data.Name}}</b>,</p>
<p>Thank you for reaching out to {{.Brand.Name}}. We have received your enquiry regarding <b>{{.Data.EnquiryType}}</b>.</p>
{{with .Details}}<div style="background: #f8f9fa; padding: 15px; border-radius: 8px; margin: 20px 0;">
<h3 style="margin-top: 0; color: #495057;">Your Enquiry Details:</h3>
{{range .}}<p style="margin: 5px 0;"><b>{{.Label}}:</b> {{.Value}}</p>
{{end}}</div>{{end}}
<p>Our expert counselors will review your profile and contact you within <b>24 hours</b> to discuss the best options for your study abroad journey.</p>
<div style="background: #e7f3ff; padding: 15px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #0066cc;">
<p style="margin: 0;"><b>What's Next?</b></p>
<ul style="margin: 10px 0; padding-left: 20px;">
{{range .NextSteps}}<li>{{.}}</li>
{{end}}</ul>
</div>
<p>If you have any urgent questions, feel free to call us at <b>{{.Brand.Phone}}</b>.</p>
<p style="margin-top: 30px;">Warm regards,<br><b>{{.Brand.Greeting}}</b><br><i>Your Study Abroad Partner</i></p>
{{template "footer" .}}`

const otpBody = `{{template "header" .}}
<p>Your OTP for admin login is: <b>{{.Data.OTP}}</b></p>
<p>It expires in {{.Data.Minutes}} minutes.</p>
{{template "footer" .}}`

var (
	eligibilityTmpl = template.Must(template.Must(template.New("layout").Parse(layout)).New("eligibility").Parse(eligibilityBody))
	enquiryTmpl     = template.Must(template.Must(template.New("layout").Parse(layout)).New("enquiry").Parse(enquiryBody))
	otpTmpl         = template.Must(template.Must(template.New("layout").Parse(layout)).New("otp").Parse(otpBody))
)

type view struct {
	Brand     Brand
	HasLogo   bool
	Data      interface{}
	Details   []detailLine
	NextSteps []string
}

// Templater renders the outgoing emails for one brand.
type Templater struct {
	Brand Brand
}

func NewTemplater(b Brand) *Templater {
	return &Templater{Brand: b}
}

func (t *Templater) render(tmpl *template.Template, v view) (string, error) {
	v.Brand = t.Brand
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderEligibilityResult renders the eligibility outcome email.
func (t *Templater) RenderEligibilityResult(e EligibilityEmail, hasLogo bool) (string, error) {
	return t.render(eligibilityTmpl, view{HasLogo: hasLogo, Data: e})
}

// RenderEnquiryConfirmation renders the enquiry acknowledgement. Details
// are listed sorted by key; the block is omitted when nothing remains.
func (t *Templater) RenderEnquiryConfirmation(e EnquiryEmail, hasLogo bool) (string, error) {
	return t.render(enquiryTmpl, view{
		HasLogo:   hasLogo,
		Data:      e,
		Details:   detailLines(e.Details),
		NextSteps: NextSteps,
	})
}

// RenderLoginOTP renders the admin second-factor email.
func (t *Templater) RenderLoginOTP(otp string, ttl time.Duration, hasLogo bool) (string, error) {
	data := struct {
		OTP     string
		Minutes int
	}{OTP: otp, Minutes: int(ttl.Minutes())}
	return t.render(otpTmpl, view{HasLogo: hasLogo, Data: data})
}

func detailLines(details map[string]string) []detailLine {
	keys := make([]string, 0, len(details))
	for k, v := range details {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]detailLine, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, detailLine{Label: HumanizeKey(k), Value: details[k]})
	}
	return lines
}

// HumanizeKey turns a camelCase key into a label: "preferredCountry"
// becomes "Preferred Country".
func HumanizeKey(key string) string {
	if key == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
