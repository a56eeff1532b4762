package pkgmeta

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/fs"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/platform/logging"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/readme"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/requirements"
	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/version"
	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// Collection steps, in order, as reported to the progress callback.
var steps = []string{"version", "readme", "requirements", "packages"}

// Collect gathers the project's metadata. A missing version declaration or
// requirements file aborts collection; a missing README only leaves the long
// description empty. When validation fails the metadata is still returned
// alongside an error wrapping model.ErrInvalidMetadata.
func (a *App) Collect(ctx context.Context) (*model.Metadata, error) {
	logger := logging.FromContext(ctx)
	pkg := a.conf.Package

	m := &model.Metadata{
		Name:                       pkg.Name,
		Description:                pkg.Description,
		LongDescriptionContentType: readme.ContentType,
		Author:                     pkg.Author,
		AuthorEmail:                pkg.AuthorEmail,
		License:                    pkg.License,
		URL:                        pkg.URL,
		Classifiers:                append([]string{}, pkg.Classifiers...),
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.reportProgress(step, i, len(steps))

		var err error
		switch step {
		case "version":
			err = a.collectVersion(m)
		case "readme":
			a.collectReadme(ctx, m)
		case "requirements":
			err = a.collectRequirements(m)
		case "packages":
			err = a.collectPackages(m)
		}
		if err != nil {
			return nil, err
		}
	}
	a.reportProgress("done", len(steps), len(steps))

	for _, w := range m.Warnings {
		logger.Warn("metadata warning", slog.String("warning", w))
	}
	logger.Debug("metadata collected",
		slog.String("name", m.Name),
		slog.String("version", m.Version),
		slog.Int("requirements", len(m.InstallRequires)),
		slog.Int("packages", len(m.Packages)),
	)

	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

func (a *App) reportProgress(step string, current, total int) {
	if a.progressCallback != nil {
		a.progressCallback(step, current, total)
	}
}

func (a *App) collectVersion(m *model.Metadata) error {
	path := a.pathResolver.Resolve(a.conf.VersionFile())
	v, err := version.Extract(path)
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}
	m.Version = v
	m.Warnings = append(m.Warnings, version.Check(v)...)
	return nil
}

func (a *App) collectReadme(ctx context.Context, m *model.Metadata) {
	path := a.pathResolver.Resolve(a.conf.Layout.Readme)
	content := readme.Load(ctx, path)

	m.LongDescription = content
	m.Readme = model.ReadmeInfo{Path: a.pathResolver.Rel(path)}
	if content == "" {
		m.Warnings = append(m.Warnings, fmt.Sprintf("no README at %s; long description is empty", m.Readme.Path))
		return
	}
	m.Readme.Found = true

	summary, err := readme.Summarize(content)
	if err != nil {
		m.Warnings = append(m.Warnings, fmt.Sprintf("README could not be summarized: %v", err))
		return
	}
	m.Readme.Title = summary.Title
	m.Readme.Abstract = summary.Abstract
	if m.Description == "" {
		m.Description = summary.Abstract
	}
}

func (a *App) collectRequirements(m *model.Metadata) error {
	path := a.pathResolver.Resolve(a.conf.Layout.Requirements)
	specs, err := requirements.Parse(path)
	if err != nil {
		return fmt.Errorf("failed to read requirements: %w", err)
	}
	m.InstallRequires = specs

	reqs, warnings := requirements.Analyze(specs)
	m.Requirements = reqs
	m.Warnings = append(m.Warnings, warnings...)

	digest, err := fs.Digest(path)
	if err != nil {
		return fmt.Errorf("failed to hash requirements: %w", err)
	}
	m.RequirementsDigest = digest
	return nil
}

func (a *App) collectPackages(m *model.Metadata) error {
	packages, err := fs.FindPackages(a.Root(), a.conf.Package.Exclude)
	if err != nil {
		return err
	}
	if len(packages) == 0 {
		m.Warnings = append(m.Warnings, "no Python packages found under the project root")
		packages = []string{}
	}
	m.Packages = packages
	return nil
}
