package argparse

import "strings"

// Usage renders the help message from the option registry, in registry
// order.
func Usage() string {
	var b strings.Builder
	b.WriteString("usage: visulog <path> [options...]\n\n")
	b.WriteString("Tool for analysis and visualization of git logs.\n\n")
	b.WriteString("Options:\n")
	for _, opt := range registry {
		b.WriteString("  ")
		b.WriteString(strings.Join(opt.Names, ", "))
		if opt.Usage != "" {
			b.WriteString("=")
			b.WriteString(opt.Usage)
		}
		b.WriteString("\n")
		for _, line := range opt.Description {
			b.WriteString("      ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
