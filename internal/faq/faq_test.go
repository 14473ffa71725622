package faq

import (
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{ID: "parking", Question: "Do you have parking?", Answer: "Yes, free parking behind the building."},
		{ID: "hours", Question: "What are your opening hours?", Answer: "Daily from 10:00 to 23:00."},
		{ID: "delivery", Question: "Do you deliver?", Answer: "We deliver within the city center."},
	}
}

func TestLookupExact(t *testing.T) {
	s := New(testEntries())

	e, ok := s.Lookup("Do you have parking?")
	if !ok || e.ID != "parking" {
		t.Errorf("exact lookup failed: %+v ok=%v", e, ok)
	}

	// Case and punctuation insensitive.
	e, ok = s.Lookup("do you have PARKING")
	if !ok || e.ID != "parking" {
		t.Errorf("normalized lookup failed: %+v ok=%v", e, ok)
	}
}

func TestLookupPrefix(t *testing.T) {
	s := New(testEntries())
	e, ok := s.Lookup("what are your opening")
	if !ok || e.ID != "hours" {
		t.Errorf("prefix lookup failed: %+v ok=%v", e, ok)
	}
}

func TestLookupFuzzy(t *testing.T) {
	s := New(testEntries())
	e, ok := s.Lookup("what are you opening hours")
	if !ok || e.ID != "hours" {
		t.Errorf("fuzzy lookup failed: %+v ok=%v", e, ok)
	}
}

func TestLookupRejectsUnrelated(t *testing.T) {
	s := New(testEntries())
	if e, ok := s.Lookup("recommend me a pizza"); ok {
		t.Errorf("unrelated query matched FAQ %q", e.ID)
	}
	if _, ok := s.Lookup(""); ok {
		t.Error("empty query must not match")
	}
}

func TestPromptExcerpt(t *testing.T) {
	s := New(testEntries())
	got := s.PromptExcerpt(2)
	want := "Q: Do you have parking?\nA: Yes, free parking behind the building.\nQ: What are your opening hours?\nA: Daily from 10:00 to 23:00."
	if got != want {
		t.Errorf("excerpt = %q", got)
	}
}

func TestSimilarityRatio(t *testing.T) {
	if r := similarityRatio("abc", "abc"); r != 1 {
		t.Errorf("identical ratio = %f", r)
	}
	if r := similarityRatio("abc", "xyz"); r != 0 {
		t.Errorf("disjoint ratio = %f", r)
	}
	if r := similarityRatio("", ""); r != 1 {
		t.Errorf("empty ratio = %f", r)
	}
}
