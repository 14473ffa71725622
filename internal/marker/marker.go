// Package marker parses the line-oriented command grammar the LLM embeds
// in its free-text output. Markers look like `KEYWORD:payload` with the
// payload running to the end of the line; a small family of boolean
// markers carries no payload. The grammar is the wire protocol between
// the model and the router, case-sensitive on the keyword.
package marker

import (
	"strings"
)

// Marker is one recognized command keyword.
type Marker string

// Payload-bearing markers. At most one of these drives the structured
// intent per turn; extras are anomalies, not errors.
const (
	CheckDelivery Marker = "CHECK_DELIVERY"
	ParseCategory Marker = "PARSE_CATEGORY"
	DishPhoto     Marker = "DISH_PHOTO"
	GenImage      Marker = "GEN_IMAGE"
	ParseBooking  Marker = "PARSE_BOOKING"
	Search        Marker = "SEARCH"
)

// Markers without payload.
const (
	CallHuman       Marker = "CALL_HUMAN"
	AgeVerification Marker = "CONFIRM_AGE_VERIFICATION"
)

// Flag is a boolean side-effect marker. Flags are independent and may
// coexist with one payload command and plain text.
type Flag string

const (
	FlagDeliveryButton Flag = "SHOW_DELIVERY_BUTTON"
	FlagApps           Flag = "SHOW_APPS"
	FlagHallPhoto      Flag = "SHOW_HALL_PHOTO"
	FlagBarPhoto       Flag = "SHOW_BAR_PHOTO"
	FlagKassaPhoto     Flag = "SHOW_KASSA_PHOTO"
	FlagWCPhoto        Flag = "SHOW_WC_PHOTO"
	FlagReviews        Flag = "SHOW_REVIEWS"
	FlagRestaurantMenu Flag = "SHOW_RESTAURANT_MENU"
	FlagEventOptions   Flag = "SHOW_EVENT_OPTIONS"
)

// payloadPrecedence fixes which payload command wins when the model emits
// more than one. Order is a behavioral contract.
var payloadPrecedence = []Marker{
	CheckDelivery,
	ParseCategory,
	DishPhoto,
	GenImage,
	ParseBooking,
	Search,
}

var allFlags = []Flag{
	FlagDeliveryButton,
	FlagApps,
	FlagHallPhoto,
	FlagBarPhoto,
	FlagKassaPhoto,
	FlagWCPhoto,
	FlagReviews,
	FlagRestaurantMenu,
	FlagEventOptions,
}

// Command is a payload-bearing marker occurrence.
type Command struct {
	Marker  Marker
	Payload string
}

// Result is the outcome of extracting markers from one LLM response.
type Result struct {
	// Text is the user-visible text with every recognized marker removed.
	Text string
	// Command is the winning payload command, nil when none was present.
	Command *Command
	// Flags holds the SHOW_* booleans found in the text.
	Flags map[Flag]bool
	// CallHuman and AgeVerification are independent no-payload markers.
	CallHuman       bool
	AgeVerification bool
	// Anomalies lists payload commands ignored by precedence.
	Anomalies []Command
}

// HasSignal reports whether extraction found anything actionable.
func (r Result) HasSignal() bool {
	return r.Command != nil || len(r.Flags) > 0 || r.CallHuman || r.AgeVerification || strings.TrimSpace(r.Text) != ""
}

// Extract parses text against the marker grammar. All recognized marker
// tokens are stripped from the returned Text; when several payload
// commands appear, the precedence order picks the winner and the rest are
// reported as anomalies.
func Extract(text string) Result {
	res := Result{Flags: make(map[Flag]bool)}

	var commands []Command
	var outLines []string

	for _, line := range strings.Split(text, "\n") {
		// Boolean markers first: exact tokens, removable anywhere in the line.
		for _, f := range allFlags {
			if strings.Contains(line, string(f)) {
				res.Flags[f] = true
				line = strings.ReplaceAll(line, string(f), "")
			}
		}
		if strings.Contains(line, string(AgeVerification)) {
			res.AgeVerification = true
			line = strings.ReplaceAll(line, string(AgeVerification), "")
		}
		if strings.Contains(line, string(CallHuman)) {
			res.CallHuman = true
			line = strings.ReplaceAll(line, string(CallHuman), "")
		}

		commands = append(commands, parsePayloadCommands(line)...)

		// Payload markers swallow the rest of the line.
		if cut := earliestPayloadMarker(line); cut >= 0 {
			line = line[:cut]
		}

		line = strings.TrimRight(line, " \t")
		outLines = append(outLines, line)
	}

	res.Text = strings.TrimSpace(strings.Join(outLines, "\n"))

	if len(commands) > 0 {
		winner := pickByPrecedence(commands)
		res.Command = &commands[winner]
		for i := range commands {
			if i != winner {
				res.Anomalies = append(res.Anomalies, commands[i])
			}
		}
	}

	return res
}

// parsePayloadCommands finds every payload marker occurrence in a line.
// Each payload runs from after the colon to the next marker occurrence or
// the end of the line.
func parsePayloadCommands(line string) []Command {
	type occurrence struct {
		marker Marker
		start  int // index of the marker keyword
		body   int // index right after the colon
	}

	var occ []occurrence
	for _, m := range payloadPrecedence {
		token := string(m) + ":"
		from := 0
		for {
			i := strings.Index(line[from:], token)
			if i < 0 {
				break
			}
			at := from + i
			occ = append(occ, occurrence{marker: m, start: at, body: at + len(token)})
			from = at + len(token)
		}
	}
	if len(occ) == 0 {
		return nil
	}

	// Sort occurrences by position so payload slicing follows the line.
	for i := 1; i < len(occ); i++ {
		for j := i; j > 0 && occ[j].start < occ[j-1].start; j-- {
			occ[j], occ[j-1] = occ[j-1], occ[j]
		}
	}

	commands := make([]Command, 0, len(occ))
	for i, o := range occ {
		end := len(line)
		if i+1 < len(occ) {
			end = occ[i+1].start
		}
		commands = append(commands, Command{
			Marker:  o.marker,
			Payload: strings.TrimSpace(line[o.body:end]),
		})
	}
	return commands
}

func earliestPayloadMarker(line string) int {
	cut := -1
	for _, m := range payloadPrecedence {
		if i := strings.Index(line, string(m)+":"); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	return cut
}

func pickByPrecedence(commands []Command) int {
	for _, m := range payloadPrecedence {
		for i, c := range commands {
			if c.Marker == m {
				return i
			}
		}
	}
	return 0
}

// SplitImagePayload splits a GEN_IMAGE payload into the character part and
// an optional forced dish, separated by "|".
func SplitImagePayload(payload string) (character, forcedDish string) {
	parts := strings.SplitN(payload, "|", 2)
	character = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		forcedDish = strings.TrimSpace(parts[1])
	}
	return character, forcedDish
}
