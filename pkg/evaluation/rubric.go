package evaluation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Criterion names one rubric dimension as it appears in the model's JSON.
type Criterion string

const (
	Empathy        Criterion = "empathy"
	ProblemSolving Criterion = "problemSolving"
	Communication  Criterion = "communication"
	ToneOfVoice    Criterion = "toneOfVoice"
	Efficiency     Criterion = "efficiency"
)

// Criteria lists the rubric dimensions in canonical order.
var Criteria = []Criterion{Empathy, ProblemSolving, Communication, ToneOfVoice, Efficiency}

type Score struct {
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

type Scores struct {
	Empathy        Score `json:"empathy"`
	ProblemSolving Score `json:"problemSolving"`
	Communication  Score `json:"communication"`
	ToneOfVoice    Score `json:"toneOfVoice"`
	Efficiency     Score `json:"efficiency"`
}

// Get returns the score for c; unknown criteria yield a zero Score.
func (s Scores) Get(c Criterion) Score {
	switch c {
	case Empathy:
		return s.Empathy
	case ProblemSolving:
		return s.ProblemSolving
	case Communication:
		return s.Communication
	case ToneOfVoice:
		return s.ToneOfVoice
	case Efficiency:
		return s.Efficiency
	}
	return Score{}
}

// Values returns the numeric scores in canonical order.
func (s Scores) Values() []float64 {
	out := make([]float64, 0, len(Criteria))
	for _, c := range Criteria {
		out = append(out, s.Get(c).Score)
	}
	return out
}

type Summary struct {
	Strength        string `json:"strength"`
	DevelopmentArea string `json:"developmentArea"`
}

// Result is a validated evaluation exactly as the model produced it.
type Result struct {
	Scores  Scores  `json:"scores"`
	Summary Summary `json:"summary"`
}

// The rubric types decode with exact key matches: encoding/json would otherwise
// let a differently cased duplicate overwrite the validated value.

func (r *Result) UnmarshalJSON(data []byte) error {
	m, err := fields(data)
	if err != nil {
		return err
	}
	var out Result
	if raw, ok := m["scores"]; ok {
		if err := json.Unmarshal(raw, &out.Scores); err != nil {
			return err
		}
	}
	if raw, ok := m["summary"]; ok {
		if err := json.Unmarshal(raw, &out.Summary); err != nil {
			return err
		}
	}
	*r = out
	return nil
}

func (s *Scores) UnmarshalJSON(data []byte) error {
	m, err := fields(data)
	if err != nil {
		return err
	}
	var out Scores
	for _, c := range Criteria {
		raw, ok := m[string(c)]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, out.ref(c)); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}
	*s = out
	return nil
}

func (s *Scores) ref(c Criterion) *Score {
	switch c {
	case Empathy:
		return &s.Empathy
	case ProblemSolving:
		return &s.ProblemSolving
	case Communication:
		return &s.Communication
	case ToneOfVoice:
		return &s.ToneOfVoice
	default:
		return &s.Efficiency
	}
}

func (s *Score) UnmarshalJSON(data []byte) error {
	m, err := fields(data)
	if err != nil {
		return err
	}
	var out Score
	if raw, ok := m["score"]; ok {
		if err := json.Unmarshal(raw, &out.Score); err != nil {
			return err
		}
	}
	out.Justification = text(m["justification"])
	*s = out
	return nil
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	m, err := fields(data)
	if err != nil {
		return err
	}
	*s = Summary{Strength: text(m["strength"]), DevelopmentArea: text(m["developmentArea"])}
	return nil
}

// fields splits a JSON object into its members; null gives an empty map.
func fields(data []byte) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// text turns any JSON value into display text: strings as-is, null or absent
// as "", everything else as its JSON source.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
