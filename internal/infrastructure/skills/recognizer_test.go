package skills

import (
	"reflect"
	"testing"
)

func TestRecognizeDeduplicatesCaseInsensitively(t *testing.T) {
	r := NewRecognizer()
	got := r.Recognize("Python python PYTHON")
	if !reflect.DeepEqual(got, []string{"python"}) {
		t.Fatalf("Recognize() = %v, want [python]", got)
	}
}

func TestRecognizeAcrossCategories(t *testing.T) {
	r := NewRecognizer()
	text := "Built services in Go and TypeScript with PostgreSQL and Redis on AWS, " +
		"CI via Jenkins, strong Leadership and Teamwork."
	got := r.Recognize(text)

	want := []string{"aws", "go", "jenkins", "leadership", "postgresql", "redis", "teamwork", "typescript"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Recognize() = %v, want %v", got, want)
	}
}

func TestRecognizeWholeWordOnly(t *testing.T) {
	r := NewRecognizer()
	// "Gopher" must not match "Go", "Reactive" must not match "React".
	got := r.Recognize("Gopher Reactive Javascripting")
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestRecognizeEmptyInput(t *testing.T) {
	r := NewRecognizer()
	if got := r.Recognize(""); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestRecognizeMultiWordTerms(t *testing.T) {
	r := NewRecognizer()
	got := r.Recognize("Experience with Google Cloud and Problem Solving under pressure")
	want := []string{"google cloud", "problem solving"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Recognize() = %v, want %v", got, want)
	}
}
