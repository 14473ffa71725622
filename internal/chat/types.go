package chat

import (
	"restaurant-concierge/internal/catalog"
	"restaurant-concierge/internal/marker"
)

// IntentKind discriminates the Intent union. Exactly one kind is active
// per RouterResponse.
type IntentKind string

const (
	IntentShowCategory  IntentKind = "SHOW_CATEGORY"
	IntentShowDishCard  IntentKind = "SHOW_DISH_CARD"
	IntentSearch        IntentKind = "SEARCH"
	IntentParseBooking  IntentKind = "PARSE_BOOKING"
	IntentGenerateImage IntentKind = "GENERATE_IMAGE"
	IntentCheckDelivery IntentKind = "CHECK_DELIVERY"
	IntentShowFlag      IntentKind = "SHOW_FLAG"
	IntentCallHuman     IntentKind = "CALL_HUMAN"
	IntentPlainText     IntentKind = "PLAIN_TEXT"
)

// Intent is the structured outcome of one routed turn. Only the fields
// of the active Kind are meaningful; use the constructors.
type Intent struct {
	Kind IntentKind

	Category   string        // SHOW_CATEGORY
	Item       *catalog.Item // SHOW_DISH_CARD
	Query      string        // SEARCH
	BookingRaw string        // PARSE_BOOKING
	Character  string        // GENERATE_IMAGE
	ForcedDish string        // GENERATE_IMAGE (optional)
	Address    string        // CHECK_DELIVERY
	Flag       marker.Flag   // SHOW_FLAG
	Text       string        // PLAIN_TEXT
}

func ShowCategoryIntent(name string) Intent { return Intent{Kind: IntentShowCategory, Category: name} }
func ShowDishCardIntent(item catalog.Item) Intent {
	return Intent{Kind: IntentShowDishCard, Item: &item}
}
func SearchIntent(query string) Intent      { return Intent{Kind: IntentSearch, Query: query} }
func ParseBookingIntent(raw string) Intent  { return Intent{Kind: IntentParseBooking, BookingRaw: raw} }
func GenerateImageIntent(character, forcedDish string) Intent {
	return Intent{Kind: IntentGenerateImage, Character: character, ForcedDish: forcedDish}
}
func CheckDeliveryIntent(address string) Intent {
	return Intent{Kind: IntentCheckDelivery, Address: address}
}
func ShowFlagIntent(flag marker.Flag) Intent { return Intent{Kind: IntentShowFlag, Flag: flag} }
func CallHumanIntent() Intent                { return Intent{Kind: IntentCallHuman} }
func PlainTextIntent(text string) Intent     { return Intent{Kind: IntentPlainText, Text: text} }

// RouterResponse is the single structured object produced per user turn,
// consumed by rendering collaborators.
type RouterResponse struct {
	// Text is the human-readable reply (marker-stripped for LLM turns).
	Text string
	// Intent is the active intent variant.
	Intent Intent
	// Flags are independent side-effect booleans that may accompany any
	// intent (show apps, hall photos, reviews, ...).
	Flags map[marker.Flag]bool
	// CallHuman asks the transport to notify a human operator. It may
	// coexist with a payload intent.
	CallHuman bool
	// AgeVerification asks the transport to run the age check flow.
	AgeVerification bool
}

// RouteInput is one inbound user message.
type RouteInput struct {
	Text string
}
