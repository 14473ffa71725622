package usecase

import (
	"context"
	"fmt"

	"restaurant-concierge/internal/chat"
	"restaurant-concierge/pkg/textnorm"
)

// resolveReferential handles short follow-ups ("another one", "what else")
// whose subject lives in the conversation history, not the message.
// Resolution order:
//  1. the previous user utterance names a category -> show that category
//  2. the previous user utterance re-run as a search, second hit preferred
//     so the follow-up advances past what was already shown
//  3. category evidence anywhere in the recent window -> show the category
func (uc *implUseCase) resolveReferential(ctx context.Context, userID string) (chat.RouterResponse, bool) {
	prev, ok := uc.mem.LastUserText(userID, isReferentialText)
	if ok {
		if category, found := categoryInText(prev); found {
			uc.l.Debugf(ctx, "referential: user=%s category %q from previous turn", userID, category)
			return chat.RouterResponse{
				Text:   fmt.Sprintf(TextCategoryIntro, category),
				Intent: chat.ShowCategoryIntent(category),
			}, true
		}

		if resp, found := uc.referentialSearch(ctx, prev); found {
			return resp, true
		}
	}

	if category, found := uc.historyCategory(userID); found {
		uc.l.Debugf(ctx, "referential: user=%s category %q from window scan", userID, category)
		return chat.RouterResponse{
			Text:   fmt.Sprintf(TextCategoryIntro, category),
			Intent: chat.ShowCategoryIntent(category),
		}, true
	}

	return chat.RouterResponse{}, false
}

// referentialSearch re-runs the previous utterance as a catalog search and
// picks the second-best hit when one exists. A thin result set is retried
// on the first token alone, which recovers dish-family queries like
// "margherita pizza please".
func (uc *implUseCase) referentialSearch(ctx context.Context, prev string) (chat.RouterResponse, bool) {
	candidates := uc.index.Recommendable()
	results := uc.index.Search(prev, candidates)
	if len(results) < 2 {
		if toks := textnorm.Tokenize(prev); len(toks) > 0 {
			results = uc.index.Search(toks[0], candidates)
		}
	}
	if len(results) == 0 {
		return chat.RouterResponse{}, false
	}

	pick := results[0]
	if len(results) >= 2 {
		pick = results[1]
	}
	uc.l.Debugf(ctx, "referential: %q -> %s (score %d)", prev, pick.Item.Name, pick.Score)
	return chat.RouterResponse{Intent: chat.ShowDishCardIntent(pick.Item)}, true
}

// historyCategory scans the recent window, newest first and both roles,
// for category keyword evidence.
func (uc *implUseCase) historyCategory(userID string) (string, bool) {
	turns := uc.mem.Recent(userID, uc.cfg.CategoryScanDepth)
	for i := len(turns) - 1; i >= 0; i-- {
		if category, ok := categoryInText(turns[i].Text); ok {
			return category, true
		}
	}
	return "", false
}

// isReferentialText is the skip predicate for history lookups: a follow-up
// must not resolve against another follow-up.
func isReferentialText(text string) bool {
	return containsAnyPhrase(textnorm.Normalize(text), referentialPhrases)
}
