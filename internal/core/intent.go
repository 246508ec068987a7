package core

import "strings"

// IntentKind is the classified purpose of an inbound message.
type IntentKind int

const (
	IntentUnrecognized IntentKind = iota
	IntentShowHelp
	IntentShowToday
	IntentRecordAmount
)

func (k IntentKind) String() string {
	switch k {
	case IntentShowHelp:
		return "show_help"
	case IntentShowToday:
		return "show_today"
	case IntentRecordAmount:
		return "record_amount"
	default:
		return "unrecognized"
	}
}

// Intent is the classification result. RawAmount carries the unparsed
// digit token for IntentRecordAmount and is empty otherwise.
type Intent struct {
	Kind      IntentKind
	RawAmount string
}

// Classifier maps free-form inbound text to an Intent.
//
// Classification is pure and total: every string maps to exactly one
// intent, with no I/O and no errors. The amount match is syntactic only
// (a bare 2-4 digit token); semantic validation happens in the dialog
// handler.
type Classifier struct {
	todayKeyword string
}

// DefaultTodayKeyword matches the trigger the original bot keyboard used.
const DefaultTodayKeyword = "Сегодня"

func NewClassifier(todayKeyword string) Classifier {
	if todayKeyword == "" {
		todayKeyword = DefaultTodayKeyword
	}
	return Classifier{todayKeyword: todayKeyword}
}

// TodayKeyword returns the configured trigger for the daily report.
func (c Classifier) TodayKeyword() string {
	return c.todayKeyword
}

// Classify resolves text to an intent. Checks run in the same order the
// original bot registered its handlers: help command, today keyword
// (case-sensitive containment), then amount token.
func (c Classifier) Classify(text string) Intent {
	trimmed := strings.TrimSpace(text)

	if isHelpCommand(trimmed) {
		return Intent{Kind: IntentShowHelp}
	}
	if strings.Contains(text, c.todayKeyword) {
		return Intent{Kind: IntentShowToday}
	}
	if isAmountToken(trimmed) {
		return Intent{Kind: IntentRecordAmount, RawAmount: trimmed}
	}
	return Intent{Kind: IntentUnrecognized}
}

func isHelpCommand(s string) bool {
	// Chat platforms may suffix commands with @botname; only the first
	// token counts.
	cmd, _, _ := strings.Cut(s, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd == "/start" || cmd == "/help"
}

// isAmountToken reports whether s is a bare 2-4 digit token.
func isAmountToken(s string) bool {
	if len(s) < 2 || len(s) > 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
