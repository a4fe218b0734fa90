package choice

import (
	"fmt"

	"github.com/jwebster45206/ravenlog/pkg/entity"
)

// PromptModel is what a client needs to draw the decision for one viewer.
type PromptModel struct {
	ActingHouse *entity.House   `json:"actingHouse"`
	Message     string          `json:"message"`
	Active      bool            `json:"active"`
	Options     []*entity.House `json:"options,omitempty"`
	Waiting     string          `json:"waiting,omitempty"`
}

// Prompt builds the model from the delegate's current state. It never caches:
// the delegate is the authority on who acts and what is claimable.
func Prompt(d Delegate, viewer Viewer) PromptModel {
	house := d.ActingHouse()
	if house == nil {
		return PromptModel{Message: "No decision is pending."}
	}

	p := PromptModel{
		ActingHouse: house,
		Message:     fmt.Sprintf("%s may command a Vassal house this turn.", house.Name),
	}
	if d.IsControlledBy(viewer) {
		p.Active = true
		p.Options = d.ClaimableTargets()
		return p
	}
	p.Waiting = fmt.Sprintf("Waiting for %s...", house.Name)
	return p
}
