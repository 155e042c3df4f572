package generator

import (
	"strings"
	"testing"
)

func TestHTMLRendererRenderString(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderString(`<p>{{.Name}}</p>`, map[string]string{"Name": "world"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "<p>world</p>" {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestHTMLRendererUnknownTemplate(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if _, err := renderer.Render("missing", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestBuildOutputPath(t *testing.T) {
	cases := map[string]string{
		"/":                        "index.html",
		"/2024/03/first-post/":     "2024/03/first-post/index.html",
		"/tags/go/":                "tags/go/index.html",
		"/sitemap.xml":             "sitemap.xml",
		"page/2":                   "page/2/index.html",
		"":                         "index.html",
	}
	for route, want := range cases {
		if got := buildOutputPath(route); got != want {
			t.Errorf("buildOutputPath(%q) = %q, want %q", route, got, want)
		}
	}
}

func TestTemplateHelpersWithBaseURL(t *testing.T) {
	helpers := newTemplateHelpers("https://blog.example.com/", nil)

	if got := helpers.WithBaseURL("/tags/go/"); got != "https://blog.example.com/tags/go/" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := helpers.WithBaseURL("https://elsewhere.example.com/x"); got != "https://elsewhere.example.com/x" {
		t.Fatalf("absolute urls must pass through, got %s", got)
	}
	if !strings.HasPrefix(helpers.WithBaseURL("about"), "https://blog.example.com/") {
		t.Fatal("relative paths should be anchored to the base url")
	}
}
