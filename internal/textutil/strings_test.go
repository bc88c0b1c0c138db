package textutil

import "testing"

func TestPreview(t *testing.T) {
	if got := Preview("  hello  ", 10); got != "hello" {
		t.Fatalf("got=%q", got)
	}
	if got := Preview("hello world", 5); got != "hello…" {
		t.Fatalf("got=%q", got)
	}
	if got := Preview("안녕하세요 반가워요", 5); got != "안녕하세요…" {
		t.Fatalf("got=%q", got)
	}
	if got := Preview("hello", 0); got != "" {
		t.Fatalf("got=%q", got)
	}
}

func TestFirstRunes(t *testing.T) {
	if got := FirstRunes("오늘 기분 어때?", 11); got != "오늘 기분 어때?" {
		t.Fatalf("got=%q", got)
	}
	if got := FirstRunes("사랑해", 2); got != "사랑" {
		t.Fatalf("got=%q", got)
	}
	if got := FirstRunes("abc", -1); got != "" {
		t.Fatalf("got=%q", got)
	}
}
