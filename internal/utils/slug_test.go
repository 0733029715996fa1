package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":                 "hello-world",
		"  Manfaat   Kunyit!! ":       "manfaat-kunyit",
		"Crème Brûlée & Café":         "creme-brulee-cafe",
		"---":                         "",
		"":                            "",
		"Serum_Vitamin-C 2024":        "serum-vitamin-c-2024",
		"Ñandú über naïve":            "nandu-uber-naive",
		"Привет мир":                  "",
		"10 Tips: Skincare (Natural)": "10-tips-skincare-natural",
	}
	for in, want := range cases {
		got := Slugify(in)
		if got != want {
			t.Errorf("Slugify(%q) = %q, ожидалось %q", in, got, want)
		}
		if got != "" && !IsSlug(got) {
			t.Errorf("Slugify(%q) = %q не проходит IsSlug", in, got)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, s := range []string{"Aloe Vera Gel", "Teh Hijau -- Antioksidan", "éé"} {
		once := Slugify(s)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify не идемпотентна: %q -> %q -> %q", s, once, twice)
		}
	}
}

func TestIsSlug(t *testing.T) {
	valid := []string{"a", "abc-123", "x-y-z"}
	invalid := []string{"", "-a", "a-", "a--b", "A", "a b", "é"}
	for _, s := range valid {
		if !IsSlug(s) {
			t.Errorf("IsSlug(%q) = false", s)
		}
	}
	for _, s := range invalid {
		if IsSlug(s) {
			t.Errorf("IsSlug(%q) = true", s)
		}
	}
}
