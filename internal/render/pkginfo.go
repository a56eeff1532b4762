package render

import (
	"strings"

	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/requirements"
	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// MetadataVersion is the core metadata version PkgInfo emits.
const MetadataVersion = "2.1"

// PkgInfo renders the core metadata file (PKG-INFO / METADATA) a build
// backend writes into a distribution. Empty optional fields are omitted and
// the long description becomes the message body.
func PkgInfo(m *model.Metadata) string {
	var b strings.Builder
	field := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(foldValue(value))
		b.WriteString("\n")
	}

	field("Metadata-Version", MetadataVersion)
	field("Name", m.Name)
	field("Version", m.Version)
	field("Summary", m.Description)
	field("Home-page", m.URL)
	field("Author", m.Author)
	field("Author-email", m.AuthorEmail)
	field("License", m.License)
	for _, c := range m.Classifiers {
		field("Classifier", c)
	}
	for _, spec := range m.InstallRequires {
		// Option lines such as -r have no core metadata form.
		if r, err := requirements.Decode(spec); err == nil {
			field("Requires-Dist", requirements.Format(r))
		}
	}
	field("Description-Content-Type", m.LongDescriptionContentType)

	if m.LongDescription != "" {
		b.WriteString("\n")
		b.WriteString(m.LongDescription)
		if !strings.HasSuffix(m.LongDescription, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// foldValue keeps a header value on one logical line: continuation lines are
// indented as in RFC 822 headers.
func foldValue(v string) string {
	v = strings.TrimRight(v, "\n")
	return strings.ReplaceAll(v, "\n", "\n        ")
}
