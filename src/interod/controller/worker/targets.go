package worker

import (
	"bytes"
	"path/filepath"

	uberconfig "go.uber.org/config"
)

// Targets is the per-project launch configuration, read from the targets file
// (".interod.yaml" by default) at the project root on every spawn. Absent or
// unreadable files yield an empty configuration: the build tool then loads
// the project's default targets.
type Targets struct {
	// Targets are the build-tool targets to load into the worker.
	Targets []string `yaml:"targets"`
	// Flags are extra arguments appended to the worker launch command.
	Flags []string `yaml:"flags"`
	// Resolver overrides the daemon-wide resolver snapshot for this project.
	Resolver string `yaml:"resolver"`
}

func (c *controller) loadTargets(projectRoot string) Targets {
	var t Targets
	path := filepath.Join(projectRoot, c.config.TargetsFile)

	raw, err := c.fs.ReadFile(path)
	if err != nil {
		return t
	}

	yaml, err := uberconfig.NewYAML(uberconfig.Source(bytes.NewReader(raw)))
	if err != nil {
		c.logger.Warnw("ignoring malformed targets file", "path", path, "error", err)
		return Targets{}
	}
	if err := yaml.Get(uberconfig.Root).Populate(&t); err != nil {
		c.logger.Warnw("ignoring malformed targets file", "path", path, "error", err)
		return Targets{}
	}
	return t
}
