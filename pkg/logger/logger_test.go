package logger

import (
	"reflect"
	"testing"
)

type entry struct {
	level   string
	message string
	keyvals []any
}

type recorder struct {
	entries []entry
}

func (r *recorder) add(level, message string, keyvals []any) {
	r.entries = append(r.entries, entry{level: level, message: message, keyvals: keyvals})
}

func (r *recorder) Log(m string, kv ...any)   { r.add("log", m, kv) }
func (r *recorder) Debug(m string, kv ...any) { r.add("debug", m, kv) }
func (r *recorder) Info(m string, kv ...any)  { r.add("info", m, kv) }
func (r *recorder) Warn(m string, kv ...any)  { r.add("warn", m, kv) }
func (r *recorder) Error(m string, kv ...any) { r.add("error", m, kv) }
func (r *recorder) Fatal(m string, kv ...any) { r.add("fatal", m, kv) }

func TestDispatchesToAllInstances(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Init(a, b)
	t.Cleanup(func() { Init() })

	Info("[Test] hello", "k", 1)
	Log("[Test] plain", "k", 2)

	want := []entry{
		{level: "info", message: "[Test] hello", keyvals: []any{"k", 1}},
		{level: "log", message: "[Test] plain", keyvals: []any{"k", 2}},
	}
	if !reflect.DeepEqual(a.entries, want) {
		t.Fatalf("unexpected entries in a: %+v", a.entries)
	}
	if !reflect.DeepEqual(b.entries, want) {
		t.Fatalf("unexpected entries in b: %+v", b.entries)
	}
}

func TestLevels(t *testing.T) {
	r := &recorder{}
	Init(r)
	t.Cleanup(func() { Init() })

	Debug("d")
	Warn("w")
	Error("e")
	Fatal("f")

	var levels []string
	for _, e := range r.entries {
		levels = append(levels, e.level)
	}
	if !reflect.DeepEqual(levels, []string{"debug", "warn", "error", "fatal"}) {
		t.Fatalf("unexpected levels: %v", levels)
	}
}

func TestNoInstances(t *testing.T) {
	Init()
	Info("dropped")
}
