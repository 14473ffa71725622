package usecase

import (
	"context"
	"strings"

	"restaurant-concierge/internal/chat"
	"restaurant-concierge/internal/memory"
	"restaurant-concierge/internal/model"
	"restaurant-concierge/pkg/textnorm"
)

// maxMessageLen guards against pathological inputs reaching the pipeline.
const maxMessageLen = 2000

// Route processes one user turn: validation, the deterministic fast path,
// then the LLM orchestrator. Errors never escape the turn boundary; the
// worst case is the canned fallback response. The accepted outcome (and
// only the accepted outcome) is appended to conversation memory.
func (uc *implUseCase) Route(ctx context.Context, sc model.Scope, input chat.RouteInput) (chat.RouterResponse, error) {
	if uc.cfg.TurnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.TurnTimeout)
		defer cancel()
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return chat.RouterResponse{
			Text:   TextEmptyMessage,
			Intent: chat.PlainTextIntent(TextEmptyMessage),
		}, nil
	}
	if len(text) > maxMessageLen {
		uc.l.Warnf(ctx, "route: user=%s message truncated from %d bytes", sc.UserID, len(text))
		text = text[:maxMessageLen]
	}

	norm := textnorm.Normalize(text)

	if resp, ok := uc.fastPath(ctx, sc, text, norm); ok {
		uc.l.Infof(ctx, "route: user=%s fast path -> %s", sc.UserID, resp.Intent.Kind)
		uc.recordTurn(sc.UserID, text, resp)
		return resp, nil
	}

	resp, ok := uc.routeViaLLM(ctx, sc, text)
	if !ok {
		// Degraded turn: do not record the failed exchange.
		return fallbackResponse(), nil
	}

	uc.l.Infof(ctx, "route: user=%s llm -> %s", sc.UserID, resp.Intent.Kind)
	uc.recordTurn(sc.UserID, text, resp)
	return resp, nil
}

// recordTurn appends the accepted exchange to the user's window.
func (uc *implUseCase) recordTurn(userID, userText string, resp chat.RouterResponse) {
	uc.mem.Append(userID, memory.Turn{Role: memory.RoleUser, Text: userText})
	uc.mem.Append(userID, memory.Turn{Role: memory.RoleAssistant, Text: memoryText(resp)})
}

// memoryText renders a human-readable version of a response for history.
// Marker-stripped reply text wins; intent summaries cover silent intents
// so follow-up resolution still sees what happened.
func memoryText(resp chat.RouterResponse) string {
	if strings.TrimSpace(resp.Text) != "" {
		return resp.Text
	}
	switch resp.Intent.Kind {
	case chat.IntentShowCategory:
		return "[showed category: " + resp.Intent.Category + "]"
	case chat.IntentShowDishCard:
		if resp.Intent.Item != nil {
			return "[showed dish: " + resp.Intent.Item.Name + "]"
		}
	case chat.IntentSearch:
		return "[searched: " + resp.Intent.Query + "]"
	}
	return "[" + string(resp.Intent.Kind) + "]"
}

func fallbackResponse() chat.RouterResponse {
	return chat.RouterResponse{
		Text:      TextFallback,
		Intent:    chat.CallHumanIntent(),
		CallHuman: true,
	}
}
