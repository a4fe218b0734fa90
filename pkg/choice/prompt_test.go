package choice_test

import (
	"context"
	"testing"

	"github.com/jwebster45206/ravenlog/pkg/choice"
	"github.com/jwebster45206/ravenlog/pkg/entity"
)

func TestPrompt(t *testing.T) {
	f := newFixture(t)
	vc, err := choice.NewVassalClaim([]*entity.House{f.stark}, []*entity.House{f.martell, f.tyrell})
	if err != nil {
		t.Fatalf("NewVassalClaim failed: %v", err)
	}

	p := choice.Prompt(vc, choice.Houses{"stark", "greyjoy"})
	if p.Message != "Stark may command a Vassal house this turn." {
		t.Errorf("Unexpected message %q", p.Message)
	}
	if !p.Active {
		t.Fatal("Expected the controlling viewer to be active")
	}
	if len(p.Options) != 2 || p.Options[0] != f.martell || p.Options[1] != f.tyrell {
		t.Errorf("Expected options [martell tyrell], got %v", p.Options)
	}
	if p.Waiting != "" {
		t.Errorf("Expected no waiting text, got %q", p.Waiting)
	}

	p = choice.Prompt(vc, choice.Houses{"lannister"})
	if p.Active || len(p.Options) != 0 {
		t.Errorf("Expected an inactive prompt without options, got %+v", p)
	}
	if p.Waiting != "Waiting for Stark..." {
		t.Errorf("Unexpected waiting text %q", p.Waiting)
	}

	if err := vc.Choose(context.Background(), choice.Houses{"stark"}, f.tyrell); err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	p = choice.Prompt(vc, choice.Houses{"stark"})
	if p.ActingHouse != nil || p.Active {
		t.Errorf("Expected a closed prompt, got %+v", p)
	}
}
