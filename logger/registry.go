package logger

import "sync"

// named holds loggers registered by component name.
var named sync.Map // map[string]*Logger

// Register stores l under name, replacing any earlier registration.
func Register(name string, l *Logger) {
	named.Store(name, l)
}

// Unregister removes the logger stored under name.
func Unregister(name string) {
	named.Delete(name)
}

// Get returns the logger registered under name. Unknown names get the
// global logger tagged with the component name.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers a component logger derived from the global
// logger for each name.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
