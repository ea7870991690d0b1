package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// PrincipalID records the acting principal under the key "principal_id".
func PrincipalID(id string) slog.Attr {
	return slog.String("principal_id", id)
}

// ResourceType records the entity kind under the key "resource_type".
func ResourceType(kind string) slog.Attr {
	return slog.String("resource_type", kind)
}

// ResourceID records the resource identifier under the key "resource_id".
func ResourceID(id string) slog.Attr {
	return slog.String("resource_id", id)
}

// Operation records the mutation verb under the key "operation".
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Version records a resource version under the key "version".
func Version(v int64) slog.Attr {
	return slog.Int64("version", v)
}
