package usecase

import (
	"context"
	"strings"

	"restaurant-concierge/internal/chat"
	"restaurant-concierge/internal/marker"
	"restaurant-concierge/internal/memory"
	"restaurant-concierge/internal/model"
	"restaurant-concierge/pkg/openai"
	"restaurant-concierge/pkg/textnorm"
)

// routeViaLLM sends the turn through the provider manager and converts the
// marker-annotated completion into a RouterResponse. ok=false means the
// turn degraded (provider chain exhausted or unusable completion) and the
// caller must fall back.
func (uc *implUseCase) routeViaLLM(ctx context.Context, sc model.Scope, text string) (chat.RouterResponse, bool) {
	hint := uc.conversationHint(sc.UserID, textnorm.Normalize(text))
	system, err := uc.buildSystemPrompt(hint)
	if err != nil {
		uc.l.Errorf(ctx, "llm: user=%s prompt build failed: %v", sc.UserID, err)
		return chat.RouterResponse{}, false
	}

	messages := make([]openai.Message, 0, uc.cfg.HistoryWindow+2)
	messages = append(messages, openai.Message{Role: "system", Content: system})
	for _, turn := range uc.mem.Recent(sc.UserID, uc.cfg.HistoryWindow) {
		role := "user"
		if turn.Role == memory.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, openai.Message{Role: role, Content: turn.Text})
	}
	messages = append(messages, openai.Message{Role: "user", Content: text})

	resp, err := uc.llm.CreateChatCompletion(ctx, &openai.Request{
		Messages:         messages,
		Temperature:      samplingTemperature,
		MaxTokens:        samplingMaxTokens,
		TopP:             samplingTopP,
		FrequencyPenalty: samplingFrequencyPenalty,
		PresencePenalty:  samplingPresencePenalty,
	})
	if err != nil {
		uc.l.Errorf(ctx, "llm: user=%s completion failed: %v", sc.UserID, err)
		return chat.RouterResponse{}, false
	}
	if len(resp.Choices) == 0 {
		uc.l.Errorf(ctx, "llm: user=%s empty choices", sc.UserID)
		return chat.RouterResponse{}, false
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		// Some reasoning models leave content empty and put the answer
		// in the reasoning field.
		content = resp.Choices[0].Message.Reasoning
		if strings.TrimSpace(content) != "" {
			uc.l.Warnf(ctx, "llm: user=%s content empty, using reasoning field", sc.UserID)
		}
	}

	res := marker.Extract(content)
	for _, a := range res.Anomalies {
		uc.l.Warnf(ctx, "llm: user=%s ignored extra command %s:%q", sc.UserID, a.Marker, a.Payload)
	}
	if !res.HasSignal() {
		uc.l.Errorf(ctx, "llm: user=%s completion carried no usable signal", sc.UserID)
		return chat.RouterResponse{}, false
	}

	return uc.responseFromMarkers(ctx, res), true
}

// responseFromMarkers maps an extraction result onto the intent union.
func (uc *implUseCase) responseFromMarkers(ctx context.Context, res marker.Result) chat.RouterResponse {
	out := chat.RouterResponse{
		Text:            res.Text,
		CallHuman:       res.CallHuman,
		AgeVerification: res.AgeVerification,
	}
	if len(res.Flags) > 0 {
		out.Flags = res.Flags
	}

	switch {
	case res.Command != nil:
		out.Intent = uc.intentFromCommand(ctx, *res.Command)
	case res.CallHuman:
		out.Intent = chat.CallHumanIntent()
	case len(res.Flags) > 0 && res.Text == "":
		out.Intent = chat.ShowFlagIntent(firstFlag(res.Flags))
	default:
		out.Intent = chat.PlainTextIntent(res.Text)
	}
	return out
}

func (uc *implUseCase) intentFromCommand(ctx context.Context, cmd marker.Command) chat.Intent {
	switch cmd.Marker {
	case marker.CheckDelivery:
		return chat.CheckDeliveryIntent(cmd.Payload)
	case marker.ParseCategory:
		return chat.ShowCategoryIntent(cmd.Payload)
	case marker.DishPhoto:
		// The model names dishes loosely; resolve through the matcher
		// and degrade to a search when nothing is confident enough.
		match, ok := uc.index.BestMatch(cmd.Payload, uc.index.Recommendable(), uc.cfg.AttributeThreshold)
		if !ok {
			uc.l.Warnf(ctx, "llm: dish photo payload %q missed the catalog, degrading to search", cmd.Payload)
			return chat.SearchIntent(cmd.Payload)
		}
		return chat.ShowDishCardIntent(match.Item)
	case marker.GenImage:
		character, forcedDish := marker.SplitImagePayload(cmd.Payload)
		return chat.GenerateImageIntent(character, forcedDish)
	case marker.ParseBooking:
		return chat.ParseBookingIntent(cmd.Payload)
	case marker.Search:
		return chat.SearchIntent(cmd.Payload)
	}
	return chat.PlainTextIntent(cmd.Payload)
}

func firstFlag(flags map[marker.Flag]bool) marker.Flag {
	for _, f := range []marker.Flag{
		marker.FlagDeliveryButton,
		marker.FlagApps,
		marker.FlagHallPhoto,
		marker.FlagBarPhoto,
		marker.FlagKassaPhoto,
		marker.FlagWCPhoto,
		marker.FlagReviews,
		marker.FlagRestaurantMenu,
		marker.FlagEventOptions,
	} {
		if flags[f] {
			return f
		}
	}
	return ""
}
