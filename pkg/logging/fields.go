package logging

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Simulator field helpers

func Component(name string) Field {
	return String("component", name)
}

func Edge(a, b string) Field {
	if a > b {
		a, b = b, a
	}
	return String("edge", a+"-"+b)
}

func Source(id string) Field {
	return String("source", id)
}

func Target(id string) Field {
	return String("target", id)
}

func RequestID(id string) Field {
	return String("request_id", id)
}

func Attempt(n int) Field {
	return Int("attempt", n)
}

func LinkClass(class string) Field {
	return String("class", class)
}

func Cause(cause string) Field {
	return String("cause", cause)
}

func PathIDs(path []string) Field {
	return Any("path", path)
}
