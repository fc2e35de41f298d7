package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", ":3000", "-x", "junk", "-d", "dsn"}, []string{"-a", "-d"})
	want := []string{"-a", ":3000", "-d", "dsn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-s=topsecret", "-z=nope"}, []string{"--config", "-s"})
	want := []string{"--config=conf.json", "-s=topsecret"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	// A bare allowed flag followed by another flag keeps only the flag.
	got := FilterArgs([]string{"-a", "-d", "dsn"}, []string{"-a", "-d"})
	want := []string{"-a", "-d", "dsn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}
