package schemas

import (
	"encoding/json"
	"fmt"
	"strings"

	"waste_negotiation/internal/domain/entities"
)

// Questions is the clarification payload raising questions about an offer.
type Questions struct {
	Questions []string `json:"questions" validate:"required,min=1,dive,notblank"`
}

// Answers is the clarification payload answering previously raised questions.
type Answers struct {
	Answers []Answer `json:"answers" validate:"required,min=1,dive"`
}

type Answer struct {
	Question string `json:"question" validate:"notblank"`
	Answer   string `json:"answer" validate:"notblank"`
}

// HasAnswers reports whether raw is shaped as an answers payload.
func HasAnswers(raw json.RawMessage) bool {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return false
	}
	_, ok := keys["answers"]
	return ok
}

// DecodeQuestions parses a {questions: [...]} payload.
func DecodeQuestions(raw json.RawMessage) ([]string, error) {
	var q Questions
	if fields := decodeObject(raw, &q); fields != nil {
		return nil, newValidationError(entities.StepTypeClarification, fields)
	}
	if err := checkStruct(entities.StepTypeClarification, &q); err != nil {
		return nil, err
	}
	return q.Questions, nil
}

// DecodeAnswers parses a {answers: [{question, answer}]} payload.
func DecodeAnswers(raw json.RawMessage) ([]Answer, error) {
	var a Answers
	if fields := decodeObject(raw, &a); fields != nil {
		return nil, newValidationError(entities.StepTypeClarification, fields)
	}
	if err := checkStruct(entities.StepTypeClarification, &a); err != nil {
		return nil, err
	}
	return a.Answers, nil
}

// MatchAnswers checks that every raised question has a non-empty answer.
// Unanswered questions are reported as "answers[<question index>]".
func MatchAnswers(questions []string, raw json.RawMessage) ([]Answer, error) {
	answers, err := DecodeAnswers(raw)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		byQuestion[normalizeQuestion(a.Question)] = a.Answer
	}
	var fields []string
	for i, q := range questions {
		if strings.TrimSpace(byQuestion[normalizeQuestion(q)]) == "" {
			fields = append(fields, fmt.Sprintf("answers[%d]", i))
		}
	}
	if err := newValidationError(entities.StepTypeClarification, fields); err != nil {
		return nil, err
	}
	return answers, nil
}

func normalizeQuestion(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
