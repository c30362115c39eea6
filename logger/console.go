package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

type levelStyle struct {
	tag   string
	color string
}

var levelStyles = map[string]levelStyle{
	"trace": {"TRC", "90"},
	"debug": {"DBG", "36"},
	"info":  {"INF", "32"},
	"warn":  {"WRN", "33"},
	"error": {"ERR", "31"},
	"fatal": {"FTL", "35"},
	"panic": {"PNC", "35"},
}

func bracket(s, color string, noColor bool) string {
	if noColor || color == "" {
		return "[" + s + "]"
	}
	return "\033[" + color + "m[" + s + "]\033[0m"
}

// serviceTag abbreviates a service name to the three letter prefix shown
// before the level, e.g. "abiquo" becomes "ABI".
func serviceTag(service string) string {
	if service == "default" || len(service) < 3 {
		return ""
	}
	return strings.ToUpper(service[:3])
}

func newConsoleWriter(w io.Writer, service string, noColor bool) zerolog.ConsoleWriter {
	var prefix string
	if tag := serviceTag(service); tag != "" {
		prefix = bracket(tag, "34", noColor)
	}
	text := func(i any) string {
		if i == nil {
			return ""
		}
		return fmt.Sprint(i)
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i any) string {
			name := strings.ToLower(fmt.Sprint(i))
			style, ok := levelStyles[name]
			if !ok {
				style.tag = strings.ToUpper(name)
			}
			return prefix + bracket(style.tag, style.color, noColor)
		},
		FormatMessage:    text,
		FormatFieldValue: text,
		FormatFieldName:  func(i any) string { return fmt.Sprint(i) + ":" },
	}
}
