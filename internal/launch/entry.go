package launch

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Input is one form submission. Fields are taken as-is.
type Input struct {
	DeviceName     string `json:"deviceName" yaml:"device_name"`
	ExecutablePath string `json:"executablePath" yaml:"executable_path"`
	InterfaceFile  string `json:"interfaceFile" yaml:"interface_file"`
	TargetFile     string `json:"targetFile" yaml:"target_file"`
	SVDFilePath    string `json:"svdFilePath" yaml:"svd_file_path"`
	AdapterSpeed   string `json:"adapterSpeed" yaml:"adapter_speed"`
}

// Entry is a single cortex-debug launch configuration.
type Entry struct {
	Name                  string   `json:"name"`
	Type                  string   `json:"type"`
	Request               string   `json:"request"`
	ServerType            string   `json:"servertype"`
	Cwd                   string   `json:"cwd"`
	Executable            string   `json:"executable"`
	Device                string   `json:"device"`
	ConfigFiles           []string `json:"configFiles"`
	SVDFile               string   `json:"svdFile"`
	OpenOCDLaunchCommands []string `json:"openOCDLaunchCommands"`
	RunToEntryPoint       string   `json:"runToEntryPoint"`
}

// Template holds the constant parts of an Entry. NameFormat and
// SpeedCommandFormat take a single %s.
type Template struct {
	NameFormat         string `yaml:"name_format"`
	Type               string `yaml:"type"`
	Request            string `yaml:"request"`
	ServerType         string `yaml:"servertype"`
	Cwd                string `yaml:"cwd"`
	RunToEntryPoint    string `yaml:"run_to_entry_point"`
	SpeedCommandFormat string `yaml:"speed_command_format"`
}

// DefaultTemplate produces cortex-debug entries for OpenOCD.
var DefaultTemplate = Template{
	NameFormat:         "Cortex Debug (%s)",
	Type:               "cortex-debug",
	Request:            "launch",
	ServerType:         "openocd",
	Cwd:                "${workspaceFolder}",
	RunToEntryPoint:    "main",
	SpeedCommandFormat: "adapter speed %s",
}

// withDefaults fills empty fields from DefaultTemplate.
func (t Template) withDefaults() Template {
	d := DefaultTemplate
	if t.NameFormat == "" {
		t.NameFormat = d.NameFormat
	}
	if t.Type == "" {
		t.Type = d.Type
	}
	if t.Request == "" {
		t.Request = d.Request
	}
	if t.ServerType == "" {
		t.ServerType = d.ServerType
	}
	if t.Cwd == "" {
		t.Cwd = d.Cwd
	}
	if t.RunToEntryPoint == "" {
		t.RunToEntryPoint = d.RunToEntryPoint
	}
	if t.SpeedCommandFormat == "" {
		t.SpeedCommandFormat = d.SpeedCommandFormat
	}
	return t
}

// Validate checks that each format takes the submitted value exactly once.
// Empty formats are allowed and fall back to the defaults.
func (t Template) Validate() error {
	for _, f := range []struct{ key, format string }{
		{"name_format", t.NameFormat},
		{"speed_command_format", t.SpeedCommandFormat},
	} {
		if f.format == "" {
			continue
		}
		rest := strings.ReplaceAll(f.format, "%%", "")
		if strings.Count(rest, "%") != 1 || strings.Count(rest, "%s") != 1 {
			return errors.Newf("%s %q must contain exactly one %%s", f.key, f.format)
		}
	}
	return nil
}

// Build maps in onto an Entry, filling unset template fields from
// DefaultTemplate.
func (t Template) Build(in Input) Entry {
	t = t.withDefaults()
	return Entry{
		Name:                  fmt.Sprintf(t.NameFormat, in.DeviceName),
		Type:                  t.Type,
		Request:               t.Request,
		ServerType:            t.ServerType,
		Cwd:                   t.Cwd,
		Executable:            in.ExecutablePath,
		Device:                in.DeviceName,
		ConfigFiles:           []string{in.InterfaceFile, in.TargetFile},
		SVDFile:               in.SVDFilePath,
		OpenOCDLaunchCommands: []string{fmt.Sprintf(t.SpeedCommandFormat, in.AdapterSpeed)},
		RunToEntryPoint:       t.RunToEntryPoint,
	}
}

// NewEntry builds in with DefaultTemplate.
func NewEntry(in Input) Entry {
	return DefaultTemplate.Build(in)
}
