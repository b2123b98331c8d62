package deck

// systemDefaultFont is the hard-coded last resort when the configuration
// names no usable family at all.
const systemDefaultFont = "Helvetica"

// FontConfig maps content roles to font-family names. Recognized roles are
// default, code, math, and fallback. Unset roles resolve to fallback, then to
// the system default. The config is an explicit value passed into the
// renderer call, never ambient state, so documents with different font
// preferences can be processed side by side.
type FontConfig struct {
	Default  string `yaml:"default" json:"default"`
	Code     string `yaml:"code" json:"code"`
	Math     string `yaml:"math" json:"math"`
	Fallback string `yaml:"fallback" json:"fallback"`
}

// Resolve returns the font-family for a role, walking role → fallback →
// system default.
func (fc FontConfig) Resolve(role string) string {
	var v string
	switch role {
	case "default":
		v = fc.Default
	case "code":
		v = fc.Code
	case "math":
		v = fc.Math
	case "fallback":
		v = fc.Fallback
	}
	if v != "" {
		return v
	}
	if fc.Fallback != "" {
		return fc.Fallback
	}
	return systemDefaultFont
}
