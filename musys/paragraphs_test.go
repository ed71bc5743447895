package musys

import "testing"

func TestConsumeReturnsValuesInOrder(t *testing.T) {
	p, err := ParseParagraphs("10, 20, 30")
	if err != nil {
		t.Fatalf("ParseParagraphs: %v", err)
	}
	for _, want := range []int{10, 20, 30} {
		v, ok := p.Consume('A')
		if !ok || v != want {
			t.Errorf("Consume('A') = %d, %v, want %d, true", v, ok, want)
		}
	}
	if v, ok := p.Consume('A'); ok || v != 0 {
		t.Errorf("Consume('A') after exhaustion = %d, %v, want 0, false", v, ok)
	}
}

func TestConsumeUnselectedParagraphDoesNotPanic(t *testing.T) {
	p, err := ParseParagraphs("10, 20")
	if err != nil {
		t.Fatalf("ParseParagraphs: %v", err)
	}
	// letter 0 is the zero value of Engine.selectedParagraph before any
	// "<-LETTER" paragraph select has run; it must report false rather
	// than indexing the queue array out of range.
	if v, ok := p.Consume(0); ok || v != 0 {
		t.Errorf("Consume(0) = %d, %v, want 0, false", v, ok)
	}
}

func TestConsumeOutOfRangeLetterDoesNotPanic(t *testing.T) {
	p, err := ParseParagraphs("10")
	if err != nil {
		t.Fatalf("ParseParagraphs: %v", err)
	}
	for _, letter := range []byte{'0', '[', 'a', 255} {
		if v, ok := p.Consume(letter); ok || v != 0 {
			t.Errorf("Consume(%d) = %d, %v, want 0, false", letter, v, ok)
		}
	}
}
