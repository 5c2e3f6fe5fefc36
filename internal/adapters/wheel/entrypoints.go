package wheel

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.trai.ch/zerr"
)

// EntryPoint is a console or GUI script declared in entry_points.txt.
type EntryPoint struct {
	Name   string
	Module string
	// Attr is the dotted callable inside Module.
	Attr string
	GUI  bool
}

// ReadEntryPoints returns the scripts declared in the entry_points.txt at path.
// A missing file declares no scripts.
func ReadEntryPoints(path string) ([]EntryPoint, error) {
	// #nosec G304 -- path is inside an unpacked wheel
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ParseEntryPoints(f)
}

// ParseEntryPoints reads the console_scripts and gui_scripts sections of an
// entry_points.txt document.
func ParseEntryPoints(r io.Reader) ([]EntryPoint, error) {
	var (
		points  []EntryPoint
		section string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		if section != "console_scripts" && section != "gui_scripts" {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, zerr.With(zerr.New("invalid entry point"), "line", line)
		}
		// Extras in brackets do not affect the generated script.
		value, _, _ = strings.Cut(value, "[")
		module, attr, _ := strings.Cut(strings.TrimSpace(value), ":")

		ep := EntryPoint{
			Name:   strings.TrimSpace(name),
			Module: strings.TrimSpace(module),
			Attr:   strings.TrimSpace(attr),
			GUI:    section == "gui_scripts",
		}
		if ep.Name == "" || ep.Module == "" || ep.Attr == "" {
			return nil, zerr.With(zerr.New("invalid entry point"), "line", line)
		}
		points = append(points, ep)
	}
	return points, scanner.Err()
}
