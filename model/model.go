package model

// Metadata is the distribution metadata collected for a project.
type Metadata struct {
	Name                       string        `json:"name" yaml:"name" validate:"required"`
	Version                    string        `json:"version" yaml:"version" validate:"required"`
	Description                string        `json:"description" yaml:"description"`
	LongDescription            string        `json:"long_description" yaml:"long_description"`
	LongDescriptionContentType string        `json:"long_description_content_type" yaml:"long_description_content_type"`
	Author                     string        `json:"author" yaml:"author"`
	AuthorEmail                string        `json:"author_email" yaml:"author_email" validate:"omitempty,email"`
	License                    string        `json:"license" yaml:"license"`
	URL                        string        `json:"url" yaml:"url" validate:"omitempty,url"`
	Classifiers                []string      `json:"classifiers" yaml:"classifiers" validate:"dive,classifier"`
	Packages                   []string      `json:"packages" yaml:"packages"`
	InstallRequires            []string      `json:"install_requires" yaml:"install_requires"`
	Requirements               []Requirement `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	RequirementsDigest         string        `json:"requirements_sha256,omitempty" yaml:"requirements_sha256,omitempty"`
	Readme                     ReadmeInfo    `json:"readme" yaml:"readme"`
	Warnings                   []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Requirement is a dependency specifier broken into its parts.
// Raw always holds the line exactly as it appeared in the requirements file.
type Requirement struct {
	Raw       string   `json:"raw" yaml:"raw"`
	Name      string   `json:"name" yaml:"name"`
	Extras    []string `json:"extras,omitempty" yaml:"extras,omitempty"`
	Specifier string   `json:"specifier,omitempty" yaml:"specifier,omitempty"`
	Marker    string   `json:"marker,omitempty" yaml:"marker,omitempty"`
}

// String returns the raw specifier.
func (r Requirement) String() string {
	return r.Raw
}

// ReadmeInfo records what was found at the README location.
type ReadmeInfo struct {
	Found    bool   `json:"found" yaml:"found"`
	Path     string `json:"path" yaml:"path"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// Summary holds the results of an operation for display.
type Summary struct {
	Metadata *Metadata
	Output   string
	Copied   bool
	Message  string
}
