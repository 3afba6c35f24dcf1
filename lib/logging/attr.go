package logging

import (
	"log/slog"
	"time"
)

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// InstanceID records a component instance ID under "instance_id".
func InstanceID(id string) slog.Attr {
	return slog.String("instance_id", id)
}

// Action records the action name under "action". Empty names yield an empty Attr.
func Action(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("action", name)
}

// Fields records a list of property names under the given key.
func Fields(key string, names []string) slog.Attr {
	return slog.Any(key, names)
}

// Error records err under "error". Nil errors yield an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
