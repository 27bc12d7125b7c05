package services

import (
	"strconv"
	"strings"
	"tripsure/pkg/utils"
)

type answerKind int

const (
	answerText answerKind = iota
	answerBool
	answerInt
)

// answerValue is a typed user answer produced by normalizeAnswer. Field
// bindings coerce it into their target type; a kind mismatch surfaces as
// utils.ErrFieldWrite and the question is simply asked again.
type answerValue struct {
	kind    answerKind
	text    string
	boolean bool
	number  int
}

func textAnswer(text string) answerValue {
	return answerValue{kind: answerText, text: text}
}

func (a answerValue) asText() (string, error) {
	switch a.kind {
	case answerBool:
		return strconv.FormatBool(a.boolean), nil
	case answerInt:
		return strconv.Itoa(a.number), nil
	default:
		return a.text, nil
	}
}

func (a answerValue) asInt() (int, error) {
	if a.kind != answerInt {
		return 0, utils.ErrFieldWrite
	}
	return a.number, nil
}

func (a answerValue) asBool() (bool, error) {
	if a.kind != answerBool {
		return false, utils.ErrFieldWrite
	}
	return a.boolean, nil
}

// normalizeAnswer turns raw user text into a typed value for the given
// question key. Rules apply in priority order; the first match wins.
// Only date answers can be rejected (utils.ErrInvalidDate); everything
// else falls through to the trimmed text.
func normalizeAnswer(fieldKey string, raw string) (answerValue, error) {
	answer := strings.TrimSpace(raw)
	lower := strings.ToLower(answer)

	switch fieldKey {
	case fieldStartDate, fieldEndDate:
		date, err := utils.NormalizeTripDate(answer)
		if err != nil {
			return answerValue{}, err
		}
		return textAnswer(date), nil
	case fieldPolicyType:
		// Soft validation: the shortcuts expand, anything else passes through.
		switch lower {
		case "s":
			return textAnswer("single"), nil
		case "a":
			return textAnswer("annual"), nil
		}
		return textAnswer(answer), nil
	}

	if lower == "true" || lower == "false" {
		return answerValue{kind: answerBool, boolean: lower == "true"}, nil
	}
	if fieldKey == fieldCouponCode && lower == "no" {
		// Explicit "no coupon": answered with the empty string, which is
		// distinct from the unanswered nil.
		return textAnswer(""), nil
	}
	if isDigits(answer) {
		if n, err := strconv.Atoi(answer); err == nil {
			return answerValue{kind: answerInt, number: n}, nil
		}
	}
	return textAnswer(answer), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
