package sexp

import (
	"errors"
	"testing"
)

func TestParseNested(t *testing.T) {
	node, err := Parse(`(show 12 ((b) 0.5 -1 0 0) ((l 1) 0 0x9 -49 0))`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if node.Head() != "show" {
		t.Fatalf("expected show head, got %q", node.Head())
	}
	args := node.Args()
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0].Atom != "12" {
		t.Fatalf("expected time atom 12, got %q", args[0].Atom)
	}
	ball := args[1]
	if !ball.IsList || !ball.List[0].IsList || ball.List[0].Head() != "b" {
		t.Fatalf("expected ball list, got %s", ball)
	}
	player := args[2]
	if player.List[0].Head() != "l" || player.List[0].List[1].Atom != "1" {
		t.Fatalf("expected left player 1, got %s", player)
	}
}

func TestParseQuotedStrings(t *testing.T) {
	node, err := Parse(`(server_param (landmark_file "~/.rcssserver landmark.xml")(team_l_start "")(msg "a \"b\""))`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	args := node.Args()
	if got := args[0].List[1]; !got.Quoted || got.Atom != "~/.rcssserver landmark.xml" {
		t.Fatalf("expected quoted path with space, got %+v", got)
	}
	if got := args[1].List[1]; !got.Quoted || got.Atom != "" {
		t.Fatalf("expected empty quoted atom, got %+v", got)
	}
	if got := args[2].List[1]; got.Atom != `a "b"` {
		t.Fatalf("expected escaped quotes to be unescaped, got %q", got.Atom)
	}
}

func TestParseRoundTripString(t *testing.T) {
	const src = `(team 0 HELIOS "W E" 1 0)`
	node, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := node.String(); got != src {
		t.Fatalf("expected %q, got %q", src, got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"show 1",
		"(show 1",
		`(msg "open`,
		"(a) (b)",
	} {
		if _, err := Parse(src); !errors.Is(err, ErrSyntax) {
			t.Fatalf("expected syntax error for %q, got %v", src, err)
		}
	}
}

func TestHeadOfNonList(t *testing.T) {
	if (Node{Atom: "x"}).Head() != "" {
		t.Fatal("expected atoms to have no head")
	}
	if (Node{IsList: true}).Head() != "" {
		t.Fatal("expected empty list to have no head")
	}
	if (Node{IsList: true}).Args() != nil {
		t.Fatal("expected empty list to have no args")
	}
}
