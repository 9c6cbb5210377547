package textproc

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

// --- Sentences ---

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \n\t ", nil},
		{"single sentence", "Microgravity alters bone density.", []string{"Microgravity alters bone density."}},
		{
			"multiple terminators",
			"Bone loss accelerates. Countermeasures exist! Do they work? Yes.",
			[]string{"Bone loss accelerates.", "Countermeasures exist!", "Do they work?", "Yes."},
		},
		{
			"terminator without trailing space is not a boundary",
			"See fig.2 for details. End.",
			[]string{"See fig.2 for details.", "End."},
		},
		{"no terminator", "an unterminated fragment", []string{"an unterminated fragment"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// --- Tokens ---

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"stopwords and case folding", "The Cat and THE dog.", []string{"cat", "dog"}},
		{"punctuation runs collapse", "bone--density;;loss", []string{"bone", "density", "loss"}},
		{"single characters dropped", "a b c bone", []string{"bone"}},
		{"digits kept", "iss 2014 experiment", []string{"iss", "2014", "experiment"}},
		{"only stopwords", "the and of", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// --- TopKeywords ---

func TestTopKeywordsFrequencyOrder(t *testing.T) {
	text := strings.Repeat("microgravity ", 5) + "bone density loss exercise"
	got := TopKeywords(text, 5)

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0] != "microgravity" {
		t.Errorf("got[0] = %q, want the repeated token first", got[0])
	}
}

func TestTopKeywordsTieBreakFirstSeen(t *testing.T) {
	// All tokens appear once; ties resolve in order of first appearance.
	got := TopKeywords("zebrafish osteoblast calcium signaling", 4)
	want := []string{"zebrafish", "osteoblast", "calcium", "signaling"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}
}

func TestTopKeywordsLimits(t *testing.T) {
	if got := TopKeywords("bone density", 10); len(got) != 2 {
		t.Errorf("len = %d, want 2 when fewer distinct tokens than k", len(got))
	}
	if got := TopKeywords("one two three four five six seven", 0); len(got) != DefaultKeywordCount {
		t.Errorf("len = %d, want default %d for k=0", len(got), DefaultKeywordCount)
	}
	if got := TopKeywords("", 5); len(got) != 0 {
		t.Errorf("len = %d, want 0 for empty text", len(got))
	}
}

// --- Vector and Cosine ---

func TestVectorCounts(t *testing.T) {
	vec := Vector("bone bone density")
	if vec["bone"] != 2 {
		t.Errorf("bone weight = %f, want 2", vec["bone"])
	}
	if vec["density"] != 1 {
		t.Errorf("density weight = %f, want 1", vec["density"])
	}
}

func TestCosineIdenticalVectors(t *testing.T) {
	v := Vector("microgravity bone density loss microgravity")
	if sim := Cosine(v, v); math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("Cosine(v, v) = %f, want 1.0", sim)
	}
}

func TestCosineDisjointVectors(t *testing.T) {
	a := Vector("plant arabidopsis root")
	b := Vector("astronaut cardiovascular deconditioning")
	if sim := Cosine(a, b); sim != 0.0 {
		t.Errorf("Cosine = %f, want 0.0 for disjoint vectors", sim)
	}
}

func TestCosineSymmetric(t *testing.T) {
	a := Vector("microgravity bone density")
	b := Vector("bone loss microgravity exposure")
	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("Cosine not symmetric: %f vs %f", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosineEmptyVector(t *testing.T) {
	empty := Vector("")
	doc := Vector("microgravity bone density")

	sim := Cosine(empty, doc)
	if sim != 0.0 {
		t.Errorf("Cosine(empty, doc) = %f, want exactly 0.0", sim)
	}
	if math.IsNaN(sim) {
		t.Error("Cosine produced NaN")
	}
}

func TestCosineRange(t *testing.T) {
	a := Vector("microgravity effects on human bone density")
	b := Vector("bone density loss in astronauts under microgravity")
	sim := Cosine(a, b)
	if sim <= 0.0 || sim > 1.0 {
		t.Errorf("Cosine = %f, want in (0, 1] for overlapping texts", sim)
	}
}
