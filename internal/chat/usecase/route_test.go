package usecase

import (
	"context"
	"errors"
	"testing"

	"restaurant-concierge/internal/chat"
	"restaurant-concierge/internal/marker"
	"restaurant-concierge/internal/model"
	"restaurant-concierge/pkg/openai"
)

// neutralText reliably misses every deterministic rule so the turn goes to
// the provider.
const neutralText = "i would like to ask you about something rather unusual today"

func TestRouteEmptyMessage(t *testing.T) {
	uc, mem := newDeterministicUseCase()

	resp := route(t, uc, "u1", "   ")
	if resp.Text != TextEmptyMessage || resp.Intent.Kind != chat.IntentPlainText {
		t.Errorf("got %+v / %q", resp.Intent, resp.Text)
	}
	if mem.Len("u1") != 0 {
		t.Error("empty message must not be recorded")
	}
}

func TestRouteLLMDishPhoto(t *testing.T) {
	uc, mem := newTestUseCase(&scriptedProvider{replies: []string{"Sure! Here it is.\nDISH_PHOTO:Tomato Soup"}})

	resp := route(t, uc, "u1", neutralText)
	if resp.Intent.Kind != chat.IntentShowDishCard {
		t.Fatalf("intent = %s, want SHOW_DISH_CARD", resp.Intent.Kind)
	}
	if resp.Intent.Item.Name != "Tomato Soup" {
		t.Errorf("item = %q", resp.Intent.Item.Name)
	}
	if resp.Text != "Sure! Here it is." {
		t.Errorf("text = %q, marker not stripped", resp.Text)
	}
	if mem.Len("u1") != 2 {
		t.Errorf("window length = %d, want 2", mem.Len("u1"))
	}
	if got, ok := mem.LastAssistantText("u1"); !ok || got != "Sure! Here it is." {
		t.Errorf("recorded assistant text = %q", got)
	}
}

func TestRouteLLMDishPhotoMissDegradesToSearch(t *testing.T) {
	uc, _ := newTestUseCase(&scriptedProvider{replies: []string{"DISH_PHOTO:Golden Unicorn Pie"}})

	resp := route(t, uc, "u1", neutralText)
	if resp.Intent.Kind != chat.IntentSearch || resp.Intent.Query != "Golden Unicorn Pie" {
		t.Errorf("intent = %+v, want SEARCH with raw payload", resp.Intent)
	}
}

func TestRouteLLMFlags(t *testing.T) {
	uc, _ := newTestUseCase(&scriptedProvider{replies: []string{"Our place looks like this! SHOW_HALL_PHOTO"}})

	resp := route(t, uc, "u1", neutralText)
	if !resp.Flags[marker.FlagHallPhoto] {
		t.Error("hall photo flag not set")
	}
	if resp.Text != "Our place looks like this!" {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Intent.Kind != chat.IntentPlainText {
		t.Errorf("intent = %s", resp.Intent.Kind)
	}
}

func TestRouteLLMCallHuman(t *testing.T) {
	uc, _ := newTestUseCase(&scriptedProvider{replies: []string{"CALL_HUMAN"}})

	resp := route(t, uc, "u1", neutralText)
	if !resp.CallHuman || resp.Intent.Kind != chat.IntentCallHuman {
		t.Errorf("got %+v, want call-human", resp)
	}
}

func TestRouteLLMCommandPrecedence(t *testing.T) {
	uc, _ := newTestUseCase(&scriptedProvider{replies: []string{"SEARCH:pizza\nCHECK_DELIVERY:Baker Street 221b"}})

	resp := route(t, uc, "u1", neutralText)
	if resp.Intent.Kind != chat.IntentCheckDelivery || resp.Intent.Address != "Baker Street 221b" {
		t.Errorf("intent = %+v, want CHECK_DELIVERY", resp.Intent)
	}
}

func TestRouteLLMGenImage(t *testing.T) {
	uc, _ := newTestUseCase(&scriptedProvider{replies: []string{"Coming right up!\nGEN_IMAGE:astronaut | Pizza Pepperoni"}})

	resp := route(t, uc, "u1", neutralText)
	if resp.Intent.Kind != chat.IntentGenerateImage {
		t.Fatalf("intent = %s", resp.Intent.Kind)
	}
	if resp.Intent.Character != "astronaut" || resp.Intent.ForcedDish != "Pizza Pepperoni" {
		t.Errorf("payload split = %q / %q", resp.Intent.Character, resp.Intent.ForcedDish)
	}
}

func TestRouteLLMFailureFallsBack(t *testing.T) {
	uc, mem := newTestUseCase(&scriptedProvider{err: errors.New("upstream down")})

	resp := route(t, uc, "u1", neutralText)
	if resp.Text != TextFallback || !resp.CallHuman {
		t.Errorf("got %+v / %q, want canned fallback", resp.Intent, resp.Text)
	}
	if mem.Len("u1") != 0 {
		t.Error("failed turn must not be recorded")
	}
}

// reasoningProvider leaves content empty and answers via the reasoning
// field, like some reasoning models do.
type reasoningProvider struct{ reasoning string }

func (p *reasoningProvider) CreateChatCompletion(ctx context.Context, req *openai.Request) (*openai.Response, error) {
	return &openai.Response{
		Choices: []openai.Choice{{Message: openai.Message{Role: "assistant", Reasoning: p.reasoning}}},
	}, nil
}
func (p *reasoningProvider) Name() string  { return "reasoning" }
func (p *reasoningProvider) Model() string { return "test-model" }

func TestRouteLLMReasoningFallback(t *testing.T) {
	uc, _ := newTestUseCase(&reasoningProvider{reasoning: "PARSE_CATEGORY:Soups"})

	resp := route(t, uc, "u1", neutralText)
	if resp.Intent.Kind != chat.IntentShowCategory || resp.Intent.Category != "Soups" {
		t.Errorf("intent = %+v, want SHOW_CATEGORY from reasoning field", resp.Intent)
	}
}

func TestRouteLLMNoSignalFallsBack(t *testing.T) {
	uc, mem := newTestUseCase(&scriptedProvider{replies: []string{"   "}})

	resp := route(t, uc, "u1", neutralText)
	if resp.Text != TextFallback {
		t.Errorf("text = %q, want fallback", resp.Text)
	}
	if mem.Len("u1") != 0 {
		t.Error("no-signal turn must not be recorded")
	}
}

func TestRouteNeverReturnsError(t *testing.T) {
	uc, _ := newTestUseCase(&scriptedProvider{err: errors.New("boom")})

	for _, text := range []string{"", neutralText, "Margherita", "what else?"} {
		if _, err := uc.Route(context.Background(), model.Scope{UserID: "u1"}, chat.RouteInput{Text: text}); err != nil {
			t.Errorf("Route(%q) error = %v", text, err)
		}
	}
}
