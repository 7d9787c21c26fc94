package emailtemplates

import (
	"sort"
	"strings"
)

// Render replaces every {{key}} in tpl with vars[key]. Tokens without a
// value are left as they are. Rendering the same input twice gives the
// same output.
func Render(tpl string, vars map[string]string) string {
	if tpl == "" || len(vars) == 0 {
		return tpl
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// ShortUUID is the payment code shown to students: the first segment of
// the reference id (at most 8 characters), upper-cased, or "-" when there
// is none.
func ShortUUID(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "-"
	}
	code := strings.SplitN(ref, "-", 2)[0]
	if len(code) > 8 {
		code = code[:8]
	}
	return strings.ToUpper(code)
}
