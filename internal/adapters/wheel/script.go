package wheel

import (
	"bytes"
	"fmt"
	"strings"
)

// maxShebangLength is the longest interpreter line Linux passes to execve.
const maxShebangLength = 127

// Shebang returns the interpreter line for python.
// Long paths and paths with spaces use a POSIX shell trampoline.
func Shebang(python string) string {
	line := "#!" + python
	if len(line) <= maxShebangLength && !strings.ContainsAny(python, " \t") {
		return line + "\n"
	}
	return "#!/bin/sh\n'''exec' \"" + python + "\" \"$0\" \"$@\"\n' '''\n"
}

// ScriptSource returns the launcher for ep run by python.
func ScriptSource(python string, ep EntryPoint) []byte {
	topLevel, _, _ := strings.Cut(ep.Attr, ".")

	var b bytes.Buffer
	b.WriteString(Shebang(python))
	b.WriteString("# -*- coding: utf-8 -*-\n")
	b.WriteString("import re\nimport sys\n")
	fmt.Fprintf(&b, "from %s import %s\n", ep.Module, topLevel)
	b.WriteString("if __name__ == \"__main__\":\n")
	b.WriteString("    sys.argv[0] = re.sub(r\"(-script\\.pyw|\\.exe)?$\", \"\", sys.argv[0])\n")
	fmt.Fprintf(&b, "    sys.exit(%s())\n", ep.Attr)
	return b.Bytes()
}

// RewriteShebang replaces a `#!python` or `#!pythonw` first line with the
// interpreter line for python. Other content is returned unchanged.
func RewriteShebang(content []byte, python string) ([]byte, bool) {
	firstLine, rest, found := bytes.Cut(content, []byte("\n"))
	line := strings.TrimRight(string(firstLine), "\r")
	if !strings.HasPrefix(line, "#!python") {
		return content, false
	}
	if suffix := strings.TrimPrefix(line, "#!python"); suffix != "" && suffix != "w" && !strings.HasPrefix(suffix, " ") {
		return content, false
	}

	out := []byte(Shebang(python))
	if found {
		out = append(out, rest...)
	}
	return out, true
}
