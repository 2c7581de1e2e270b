package segment

import (
	"testing"
)

func TestSegmenter_SingleConstraint(t *testing.T) {
	s := NewSegmenter(10)

	segments := s.Segment("Team A cannot play on Mondays")
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segments), segments)
	}
	if segments[0] != "Team A cannot play on Mondays" {
		t.Errorf("unexpected segment: %q", segments[0])
	}
}

func TestSegmenter_BlankInput(t *testing.T) {
	s := NewSegmenter(10)

	if segments := s.Segment(""); segments != nil {
		t.Errorf("expected nil for blank input, got %v", segments)
	}
	if segments := s.Segment("   \n  "); segments != nil {
		t.Errorf("expected nil for whitespace input, got %v", segments)
	}
}

func TestSegmenter_ConjunctionSplit(t *testing.T) {
	s := NewSegmenter(10)

	segments := s.Segment("Team A cannot play on Mondays and no more than 3 games per day")
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segments), segments)
	}
	if segments[0] != "Team A cannot play on Mondays" {
		t.Errorf("unexpected first segment: %q", segments[0])
	}
	if segments[1] != "no more than 3 games per day" {
		t.Errorf("unexpected second segment: %q", segments[1])
	}
}

func TestSegmenter_ConjunctionInTeamName(t *testing.T) {
	s := NewSegmenter(10)

	// "and" joining short non-keyword clauses must not split
	segments := s.Segment("Tigers and Lions cannot play on Mondays")
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segments), segments)
	}
}

func TestSegmenter_NewlineSplit(t *testing.T) {
	s := NewSegmenter(10)

	segments := s.Segment("Team A cannot play on Mondays\nNo more than 3 games per day")
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segments), segments)
	}
}

func TestSegmenter_SemicolonSplit(t *testing.T) {
	s := NewSegmenter(10)

	segments := s.Segment("Team A cannot play on Mondays; games must end before 9pm")
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segments), segments)
	}
}

func TestSegmenter_SentenceSplit(t *testing.T) {
	s := NewSegmenter(10)

	segments := s.Segment("Team A cannot play on Mondays. Games must end before 9pm")
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segments), segments)
	}
}

func TestSegmenter_CommaSplitRequiresKeywordStart(t *testing.T) {
	s := NewSegmenter(10)

	// Second clause opens with a keyword, so the comma splits
	segments := s.Segment("Field 1 is unavailable on weekends, teams need 2 days between games")
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segments), segments)
	}

	// Second clause opens with a non-keyword, so the comma is kept
	segments = s.Segment("Team A cannot play on Mondays, Wednesdays must be game days")
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(segments), segments)
	}
}

func TestSegmenter_ShortInputSurvives(t *testing.T) {
	s := NewSegmenter(10)

	// Below the length gate, but undivided input always comes back
	segments := s.Segment("rest days")
	if len(segments) != 1 || segments[0] != "rest days" {
		t.Fatalf("expected the undivided input back, got %v", segments)
	}
}

func TestSegmenter_OrderPreserved(t *testing.T) {
	s := NewSegmenter(10)

	segments := s.Segment("No more than 3 games per day\nTeam A cannot play on Mondays\nTeams need 2 days between games")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d: %v", len(segments), segments)
	}
	if segments[0] != "No more than 3 games per day" ||
		segments[2] != "Teams need 2 days between games" {
		t.Errorf("segments out of input order: %v", segments)
	}
}
