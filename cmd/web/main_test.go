package main

import (
	"strings"
	"testing"

	"github.com/tomz197/duel/internal/config"
)

func TestRenderPage(t *testing.T) {
	roster := config.DefaultRoster()
	roster.Archetypes[0].Name = "<b>"

	page := renderPage(htmlPage, "duel.example", "2222", roster)
	for _, want := range []string{"ssh -p 2222 duel.example", "&lt;b&gt;", "Rapid", "Heavy", "#55ff00"} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(page, "{{") {
		t.Fatal("unfilled placeholder")
	}

	if page := renderPage(htmlPage, "duel.example", "22", roster); !strings.Contains(page, "<code>ssh duel.example</code>") {
		t.Fatal("default port should omit -p")
	}
}
