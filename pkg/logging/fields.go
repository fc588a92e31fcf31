package logging

import "time"

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

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Field helpers for the analysis domain

func Component(name string) Field {
	return String("component", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Rho(r float64) Field {
	return Float64("rho", r)
}

func Scale(s string) Field {
	return String("scale", s)
}

func TierCount(n int) Field {
	return Int("tier_count", n)
}

func Repeat(n int) Field {
	return Int("repeat", n)
}

func NodeCount(n int) Field {
	return Int("nodes", n)
}

func EdgeCount(n int) Field {
	return Int("edges", n)
}

func NodeID(id string) Field {
	return String("node_id", id)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
