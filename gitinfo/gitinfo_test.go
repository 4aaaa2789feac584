package gitinfo

import "testing"

func TestParseRemoteSSHForm(t *testing.T) {
	got, err := parseRemote("git@github.com:arrowcode/symgraph.git")
	if err != nil {
		t.Fatalf("parseRemote: %v", err)
	}
	if want := "github.com/arrowcode/symgraph"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseRemoteHTTPSForm(t *testing.T) {
	got, err := parseRemote("https://github.com/arrowcode/symgraph.git")
	if err != nil {
		t.Fatalf("parseRemote: %v", err)
	}
	if want := "github.com/arrowcode/symgraph"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseRemoteRejectsUnrecognizedForm(t *testing.T) {
	if _, err := parseRemote("not-a-url"); err == nil {
		t.Fatal("expected error for unrecognized remote form")
	}
}
