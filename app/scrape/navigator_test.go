package scrape

import "testing"

func TestPoolRootURL(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips journey segment",
			input:    "https://example.org/competition/poule-3/journee-7",
			expected: "https://example.org/competition/poule-3",
		},
		{
			name:     "strips journey segment with trailing slash",
			input:    "https://example.org/competition/poule-3/journee-12/",
			expected: "https://example.org/competition/poule-3",
		},
		{
			name:     "leaves pool root untouched",
			input:    "https://example.org/competition/poule-3",
			expected: "https://example.org/competition/poule-3",
		},
		{
			name:     "ignores journey segment mid-path",
			input:    "https://example.org/journee-2/poule-3",
			expected: "https://example.org/journee-2/poule-3",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PoolRootURL(tc.input); got != tc.expected {
				t.Errorf("PoolRootURL(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFlattenTextJoinsWithoutGlue(t *testing.T) {
	input := "Ven 12 décembre 2025 à 20H45\n  HBC AIX EN SAVOIE\n--\nVAL DE LEYSSE\n Voir détail "
	expected := "Ven 12 décembre 2025 à 20H45HBC AIX EN SAVOIE--VAL DE LEYSSEVoir détail"

	if got := flattenText(input); got != expected {
		t.Errorf("flattenText = %q, expected %q", got, expected)
	}
}

func TestNewMatchElementExtractsImages(t *testing.T) {
	html := `<div>
		<img src="https://cdn.example.org/ours.png" title="HBC AIX EN SAVOIE">
		<img src="https://cdn.example.org/leysse.png" title="VAL DE LEYSSE">
		<img src="" title="broken">
		<img title="no source">
	</div>`

	element := newMatchElement("line one\nline two", html)

	if element.Text != "line oneline two" {
		t.Errorf("unexpected text: %q", element.Text)
	}
	if len(element.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(element.Images))
	}
	if element.Images[0].Src != "https://cdn.example.org/ours.png" || element.Images[0].Title != "HBC AIX EN SAVOIE" {
		t.Errorf("unexpected first image: %+v", element.Images[0])
	}
	if element.Images[1].Title != "VAL DE LEYSSE" {
		t.Errorf("unexpected second image: %+v", element.Images[1])
	}
}

func TestNewMatchElementWithoutHTML(t *testing.T) {
	element := newMatchElement("some text", "")

	if element.Text != "some text" {
		t.Errorf("unexpected text: %q", element.Text)
	}
	if element.Images != nil {
		t.Errorf("expected no images, got %+v", element.Images)
	}
}

func TestNewMatchElementImageWithoutTitle(t *testing.T) {
	element := newMatchElement("x", `<img src="https://cdn.example.org/logo.png">`)

	if len(element.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(element.Images))
	}
	if element.Images[0].Title != "" {
		t.Errorf("expected empty title, got %q", element.Images[0].Title)
	}
}
