package usecase

import (
	"context"
	"fmt"
	"strings"

	"restaurant-concierge/internal/chat"
	"restaurant-concierge/internal/marker"
	"restaurant-concierge/internal/model"
	"restaurant-concierge/pkg/textnorm"
)

// questionWords are stripped together with attribute keywords before the
// remainder of an attribute query is matched against the catalog.
var questionWords = map[string]struct{}{
	"how": {}, "many": {}, "what": {}, "whats": {}, "is": {}, "are": {},
	"does": {}, "do": {}, "your": {}, "you": {}, "have": {}, "there": {},
	"it": {}, "this": {}, "that": {}, "me": {}, "tell": {}, "show": {},
	"in": {}, "of": {}, "the": {}, "a": {}, "for": {},
}

// fastPath runs the ordered deterministic rule groups. First match wins;
// the evaluation order is a behavioral contract. Returns ok=false when no
// rule fires and the turn must go to the LLM orchestrator.
func (uc *implUseCase) fastPath(ctx context.Context, sc model.Scope, raw, norm string) (chat.RouterResponse, bool) {
	tokens := textnorm.Tokenize(raw)

	// 1. FAQ lookup, skipped for menu-domain messages so food questions
	// never get a parking answer.
	if !containsAnyStem(norm, menuDomainKeywords) && uc.faq != nil {
		if entry, ok := uc.faq.Lookup(raw); ok {
			uc.l.Debugf(ctx, "fastpath: faq hit %s", entry.ID)
			return chat.RouterResponse{
				Text:   entry.Answer,
				Intent: chat.PlainTextIntent(entry.Answer),
			}, true
		}
	}

	// 2. Canonical phrase sets.
	if resp, ok := uc.ruleCanonicalPhrases(norm); ok {
		return resp, true
	}

	// 3. Referential follow-ups resolve against conversation history.
	if len(tokens) <= maxFollowUpTokens && containsAnyPhrase(norm, referentialPhrases) {
		if resp, ok := uc.resolveReferential(ctx, sc.UserID); ok {
			return resp, true
		}
	}

	// 4. Explicit dish-attribute queries.
	if resp, ok := uc.ruleAttribute(ctx, norm); ok {
		return resp, true
	}

	// 5. Bare short utterance as a literal dish-name probe.
	if resp, ok := uc.ruleBareUtterance(ctx, norm, tokens); ok {
		return resp, true
	}

	// 6. Category + calorie question with no specific dish named.
	if containsAnyToken(norm, calorieKeywords) {
		if category, ok := categoryInText(norm); ok {
			return chat.RouterResponse{
				Text:   TextWhichExactly,
				Intent: chat.ShowCategoryIntent(category),
			}, true
		}
	}

	// 7. Generic availability question backed by recent category context.
	if containsAnyPhrase(norm, recommendationPhrases) {
		if category, ok := uc.historyCategory(sc.UserID); ok {
			return chat.RouterResponse{
				Text:   fmt.Sprintf(TextCategoryIntro, category),
				Intent: chat.ShowCategoryIntent(category),
			}, true
		}
	}

	return chat.RouterResponse{}, false
}

// ruleCanonicalPhrases handles punctuation-stripped equality matches for
// well-known requests.
func (uc *implUseCase) ruleCanonicalPhrases(norm string) (chat.RouterResponse, bool) {
	switch {
	case matchesPhrase(norm, breakfastPhrases):
		return categoryResponse("breakfast"), true
	case matchesPhrase(norm, saladPhrases):
		return categoryResponse("salads"), true
	case matchesPhrase(norm, hotDishPhrases):
		return categoryResponse("hot dishes"), true
	case matchesPhrase(norm, categoriesPhrases):
		names := uc.sectionNames()
		text := fmt.Sprintf(TextCategoriesList, strings.Join(names, ", "))
		return chat.RouterResponse{Text: text, Intent: chat.PlainTextIntent(text)}, true
	case matchesPhrase(norm, showMenuPhrases):
		return chat.RouterResponse{
			Text:   TextMenuIntro,
			Intent: chat.ShowFlagIntent(marker.FlagRestaurantMenu),
			Flags:  map[marker.Flag]bool{marker.FlagRestaurantMenu: true},
		}, true
	case matchesPhrase(norm, banquetPhrases):
		return chat.RouterResponse{
			Text:   TextBanquet,
			Intent: chat.ShowFlagIntent(marker.FlagEventOptions),
			Flags:  map[marker.Flag]bool{marker.FlagEventOptions: true},
		}, true
	}
	return chat.RouterResponse{}, false
}

// ruleAttribute answers explicit attribute questions (composition, photo,
// calories, price, weight, macros) with a dish card matched at the low
// threshold. The attribute and question tokens are stripped before
// matching. A clearly-named but unknown dish gets a polite not-found.
func (uc *implUseCase) ruleAttribute(ctx context.Context, norm string) (chat.RouterResponse, bool) {
	if !containsAnyToken(norm, attributeKeywords) {
		return chat.RouterResponse{}, false
	}

	var rest []string
	for _, tok := range strings.Fields(norm) {
		if tokenInList(tok, attributeKeywords) {
			continue
		}
		if _, q := questionWords[tok]; q {
			continue
		}
		rest = append(rest, tok)
	}
	if len(rest) == 0 {
		return chat.RouterResponse{}, false
	}

	// A pure category mention is the calorie-clarification rule's job.
	allCategories := true
	for _, tok := range rest {
		if _, ok := categoryKeywords[textnorm.Stem(tok)]; !ok {
			allCategories = false
			break
		}
	}
	if allCategories {
		return chat.RouterResponse{}, false
	}

	query := strings.Join(rest, " ")
	match, ok := uc.index.BestMatch(query, uc.index.Recommendable(), uc.cfg.AttributeThreshold)
	if !ok {
		uc.l.Debugf(ctx, "fastpath: attribute query %q missed the catalog", query)
		return chat.RouterResponse{
			Text:   TextNotFound,
			Intent: chat.PlainTextIntent(TextNotFound),
		}, true
	}

	return chat.RouterResponse{Intent: chat.ShowDishCardIntent(match.Item)}, true
}

// ruleBareUtterance treats a short plain message as a literal dish-name
// probe with the high-confidence threshold. Recommendation-style phrases
// are excluded and fall through to history-aware rules or the LLM.
func (uc *implUseCase) ruleBareUtterance(ctx context.Context, norm string, tokens []string) (chat.RouterResponse, bool) {
	if len(tokens) == 0 || len(tokens) > maxFollowUpTokens {
		return chat.RouterResponse{}, false
	}
	if strings.Trim(norm, "0123456789 ") == "" {
		return chat.RouterResponse{}, false
	}
	if containsAnyToken(norm, attributeKeywords) || containsAnyPhrase(norm, recommendationPhrases) {
		return chat.RouterResponse{}, false
	}

	match, ok := uc.index.BestMatch(norm, uc.index.Recommendable(), uc.cfg.BareUtteranceThreshold)
	if !ok {
		return chat.RouterResponse{}, false
	}

	uc.l.Debugf(ctx, "fastpath: bare utterance %q -> %s (score %d)", norm, match.Item.Name, match.Score)
	return chat.RouterResponse{Intent: chat.ShowDishCardIntent(match.Item)}, true
}

func categoryResponse(name string) chat.RouterResponse {
	return chat.RouterResponse{
		Text:   fmt.Sprintf(TextCategoryIntro, name),
		Intent: chat.ShowCategoryIntent(name),
	}
}

// sectionNames lists category names across the snapshot in catalog order.
func (uc *implUseCase) sectionNames() []string {
	snap := uc.index.Snapshot()
	if snap == nil {
		return nil
	}
	var names []string
	for _, m := range snap.Menus {
		for _, c := range m.Categories {
			names = append(names, c.Name)
		}
	}
	return names
}

// categoryInText returns the canonical category evidenced by any token.
func categoryInText(text string) (string, bool) {
	for _, tok := range textnorm.Tokenize(text) {
		if name, ok := categoryKeywords[textnorm.Stem(tok)]; ok {
			return name, true
		}
	}
	return "", false
}

func matchesPhrase(norm string, phrases []string) bool {
	for _, p := range phrases {
		if norm == p {
			return true
		}
	}
	return false
}

func containsAnyPhrase(norm string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(norm, p) {
			return true
		}
	}
	return false
}

// containsAnyToken reports whether any whitespace token of norm equals a
// keyword from list.
func containsAnyToken(norm string, list []string) bool {
	for _, tok := range strings.Fields(norm) {
		if tokenInList(tok, list) {
			return true
		}
	}
	return false
}

func tokenInList(tok string, list []string) bool {
	for _, kw := range list {
		if tok == kw {
			return true
		}
	}
	return false
}

// containsAnyStem matches on stems so plural forms gate the same way as
// their singulars.
func containsAnyStem(norm string, list []string) bool {
	for _, tok := range strings.Fields(norm) {
		st := textnorm.Stem(tok)
		for _, kw := range list {
			if st == textnorm.Stem(kw) {
				return true
			}
		}
	}
	return false
}
