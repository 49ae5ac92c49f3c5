package notify

import "strings"

// URLValidator decides whether an image URI may be attached.
type URLValidator interface {
	IsHTTPURL(s string) bool
}

// URLValidatorFunc adapts a function to URLValidator.
type URLValidatorFunc func(string) bool

func (f URLValidatorFunc) IsHTTPURL(s string) bool { return f(s) }

// Adapter converts a ContentSpec into platform independent Content.
type Adapter struct {
	Validator URLValidator
}

// NewAdapter returns an Adapter using v to validate image URIs.
func NewAdapter(v URLValidator) *Adapter {
	return &Adapter{Validator: v}
}

// Build converts spec into Content. It never fails: an image URI the
// validator rejects is dropped, as is a blank attribution.
func (a *Adapter) Build(spec ContentSpec) Content {
	b := NewContentBuilder().
		AddText(spec.Title, TextStyleHeader).
		AddText(spec.Body, TextStyleBody)

	if spec.ImageURI != "" && a.Validator != nil && a.Validator.IsHTTPURL(spec.ImageURI) {
		switch spec.ImageMode {
		case ImageHero:
			b.AddHeroImage(spec.ImageURI)
		case ImageInline:
			b.AddInlineImage(spec.ImageURI)
		}
	}

	if strings.TrimSpace(spec.Attribution) != "" {
		b.AddAttribution(spec.Attribution)
	}

	if !spec.Timestamp.IsZero() {
		b.SetTimestamp(spec.Timestamp)
	}

	return b.SetArguments(spec.Arguments).
		SetResident(spec.Resident).
		Content()
}
