//go:build bench

package pipeline

import (
	"fmt"
	"strings"
	"testing"
)

// BenchmarkInjectCSS benchmarks CSS injection into HTML.
func BenchmarkInjectCSS(b *testing.B) {
	injector := &CSSInjection{}

	smallHTML := WrapDocument("Test", "<h1>Hello</h1>")
	largeHTML := WrapDocument("Test", strings.Repeat("<p>Paragraph content here.</p>\n", 500))

	smallCSS := "body { margin: 0; }"
	largeCSS := strings.Repeat(".class-name { color: red; font-size: 14px; margin: 10px; }\n", 100)

	inputs := []struct {
		name string
		html string
		css  string
	}{
		{"small_html_small_css", smallHTML, smallCSS},
		{"small_html_large_css", smallHTML, largeCSS},
		{"large_html_small_css", largeHTML, smallCSS},
		{"large_html_large_css", largeHTML, largeCSS},
		{"fragment", "<p>Content</p>", smallCSS},
		{"empty_css", smallHTML, ""},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = injector.InjectCSS(input.html, input.css)
			}
		})
	}
}

// BenchmarkSanitizeCSS benchmarks CSS sanitization.
func BenchmarkSanitizeCSS(b *testing.B) {
	inputs := []struct {
		name string
		css  string
	}{
		{"clean", strings.Repeat(".class { color: red; }\n", 50)},
		{"with_escapes", strings.Repeat(".class { content: '</style>'; }\n", 50)},
		{"large_clean", strings.Repeat(".class { color: red; font-size: 14px; }\n", 500)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = sanitizeCSS(input.css)
			}
		})
	}
}

// BenchmarkInsertFragment benchmarks DOM insertion into hosts of growing size.
func BenchmarkInsertFragment(b *testing.B) {
	fragment := "<h1>Notebook</h1>" + strings.Repeat("<p>cell</p>", 50)

	for _, n := range []int{10, 100, 1000} {
		host := generateHostHTML(n)
		b.Run(fmt.Sprintf("elements_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := InsertFragment(host, "target", fragment); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// Helper functions

func generateHostHTML(elements int) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><title>Host</title></head>\n<body>\n")
	for i := 0; i < elements; i++ {
		sb.WriteString(fmt.Sprintf(`<div id="el-%d"><p>Paragraph %d</p></div>`, i, i))
		sb.WriteString("\n")
	}
	sb.WriteString(`<div id="target"></div>`)
	sb.WriteString("\n</body>\n</html>")
	return sb.String()
}
